// Package commands defines the organizer CLI.
package commands

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/landy-dev/organizer-be/internal/config"
	"github.com/landy-dev/organizer-be/internal/storage"
	"github.com/landy-dev/organizer-be/internal/storage/postgres"
	"github.com/landy-dev/organizer-be/internal/storage/sqlite"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "organizer",
		Short: "Personal productivity backend: expenses, notes and todos",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newDelUserCommand())

	return rootCmd
}

func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
	return config.Load()
}

// openStore selects the backing store: Postgres when DATABASE_URL is set,
// the local SQLite file otherwise.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		return postgres.New(ctx, cfg.DatabaseURL)
	}
	return sqlite.New(cfg.SQLitePath)
}

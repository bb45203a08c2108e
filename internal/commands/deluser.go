package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landy-dev/organizer-be/internal/storage"
)

// Account deletion is an administrative action: there is no API endpoint
// for it. Deleting a user cascades to every owned expense, note and todo.
func newDelUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deluser <username>",
		Short: "Delete an account and all records it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelUser(cmd.Context(), args[0])
		},
	}
}

func runDelUser(ctx context.Context, username string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteUserByUsername(ctx, username); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no account named %q", username)
		}
		return err
	}
	fmt.Printf("deleted account %q and all owned records\n", username)
	return nil
}

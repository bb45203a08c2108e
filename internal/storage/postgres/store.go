package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for every resource.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			montant NUMERIC(10,2) NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date_for TEXT,
			time_for TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS expenses_user_idx ON expenses (user_id);`,
		`CREATE INDEX IF NOT EXISTS notes_user_idx ON notes (user_id);`,
		`CREATE INDEX IF NOT EXISTS todos_user_idx ON todos (user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ---- users ----

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, created_at;`
	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// DeleteUserByUsername removes a user; owned records cascade.
func (s *Store) DeleteUserByUsername(ctx context.Context, username string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE username = $1;`, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ---- expenses ----

func expenseOrderClause(ordering string) string {
	switch ordering {
	case "montant":
		return "montant ASC, id ASC"
	case "-montant":
		return "montant DESC, id ASC"
	case "date":
		return "date ASC, id ASC"
	default:
		return "date DESC, id ASC"
	}
}

// ListExpenses returns the owner's expenses, filtered and ordered.
func (s *Store) ListExpenses(ctx context.Context, userID int64, filter storage.ExpenseFilter) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, title, montant, category, description, date
		FROM expenses WHERE user_id = $1`
	args := []any{userID}
	if filter.Search != "" {
		query += ` AND (title ILIKE '%' || $2 || '%' OR category ILIKE '%' || $2 || '%')`
		args = append(args, filter.Search)
	}
	query += ` ORDER BY ` + expenseOrderClause(filter.Ordering) + `;`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Montant, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateExpense inserts an expense row for its owner.
func (s *Store) CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	const query = `
		INSERT INTO expenses (user_id, title, montant, category, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		expense.UserID, expense.Title, expense.Montant, expense.Category, expense.Description, expense.Date,
	).Scan(&expense.ID)
	if err != nil {
		return models.Expense{}, err
	}
	return expense, nil
}

// GetExpense fetches one expense scoped to its owner.
func (s *Store) GetExpense(ctx context.Context, userID, id int64) (models.Expense, error) {
	const query = `
		SELECT id, user_id, title, montant, category, description, date
		FROM expenses WHERE id = $1 AND user_id = $2;`
	var e models.Expense
	err := s.pool.QueryRow(ctx, query, id, userID).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Montant, &e.Category, &e.Description, &e.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Expense{}, storage.ErrNotFound
		}
		return models.Expense{}, err
	}
	return e, nil
}

// UpdateExpense rewrites the mutable fields; the creation date is immutable.
func (s *Store) UpdateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	const query = `
		UPDATE expenses SET title = $3, montant = $4, category = $5, description = $6
		WHERE id = $1 AND user_id = $2
		RETURNING date;`
	err := s.pool.QueryRow(ctx, query,
		expense.ID, expense.UserID, expense.Title, expense.Montant, expense.Category, expense.Description,
	).Scan(&expense.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Expense{}, storage.ErrNotFound
		}
		return models.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense removes one expense scoped to its owner.
func (s *Store) DeleteExpense(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---- notes ----

// ListNotes returns the owner's notes, most recently modified first.
func (s *Store) ListNotes(ctx context.Context, userID int64, filter storage.NoteFilter) ([]models.Note, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes WHERE user_id = $1`
	args := []any{userID}
	if filter.Search != "" {
		query += ` AND (title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')`
		args = append(args, filter.Search)
	}
	query += ` ORDER BY updated_at DESC, id DESC;`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CreateNote inserts a note row for its owner.
func (s *Store) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	const query = `
		INSERT INTO notes (user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	).Scan(&note.ID)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// GetNote fetches one note scoped to its owner.
func (s *Store) GetNote(ctx context.Context, userID, id int64) (models.Note, error) {
	const query = `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM notes WHERE id = $1 AND user_id = $2;`
	var n models.Note
	err := s.pool.QueryRow(ctx, query, id, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Note{}, storage.ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// UpdateNote rewrites the mutable fields and refreshes updated_at.
func (s *Store) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	const query = `
		UPDATE notes SET title = $3, content = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING created_at;`
	err := s.pool.QueryRow(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.UpdatedAt,
	).Scan(&note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Note{}, storage.ErrNotFound
		}
		return models.Note{}, err
	}
	return note, nil
}

// DeleteNote removes one note scoped to its owner.
func (s *Store) DeleteNote(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---- todos ----

// ListTodos returns the owner's todos, most recently created first.
func (s *Store) ListTodos(ctx context.Context, userID int64, filter storage.TodoFilter) ([]models.Todo, error) {
	query := `
		SELECT id, user_id, title, description, date_for, time_for, completed, created_at, updated_at
		FROM todos WHERE user_id = $1`
	args := []any{userID}
	if filter.Search != "" {
		args = append(args, filter.Search)
		query += fmt.Sprintf(` AND title ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		query += fmt.Sprintf(` AND completed = $%d`, len(args))
	}
	if filter.DateFor != nil {
		args = append(args, *filter.DateFor)
		query += fmt.Sprintf(` AND date_for = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC;`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DateFor, &t.TimeFor, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// CreateTodo inserts a todo row for its owner.
func (s *Store) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const query = `
		INSERT INTO todos (user_id, title, description, date_for, time_for, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		todo.UserID, todo.Title, todo.Description, todo.DateFor, todo.TimeFor, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID)
	if err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// GetTodo fetches one todo scoped to its owner.
func (s *Store) GetTodo(ctx context.Context, userID, id int64) (models.Todo, error) {
	const query = `
		SELECT id, user_id, title, description, date_for, time_for, completed, created_at, updated_at
		FROM todos WHERE id = $1 AND user_id = $2;`
	var t models.Todo
	err := s.pool.QueryRow(ctx, query, id, userID).
		Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DateFor, &t.TimeFor, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}
	return t, nil
}

// UpdateTodo rewrites the mutable fields and refreshes updated_at.
func (s *Store) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const query = `
		UPDATE todos SET title = $3, description = $4, date_for = $5, time_for = $6, completed = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING created_at;`
	err := s.pool.QueryRow(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.DateFor, todo.TimeFor, todo.Completed, todo.UpdatedAt,
	).Scan(&todo.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}

// ToggleTodoCompleted flips the completion flag and returns the new value.
func (s *Store) ToggleTodoCompleted(ctx context.Context, userID, id int64) (bool, error) {
	const query = `
		UPDATE todos SET completed = NOT completed, updated_at = $3
		WHERE id = $1 AND user_id = $2
		RETURNING completed;`
	var completed bool
	err := s.pool.QueryRow(ctx, query, id, userID, time.Now().UTC()).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, storage.ErrNotFound
		}
		return false, err
	}
	return completed, nil
}

// DeleteTodo removes one todo scoped to its owner.
func (s *Store) DeleteTodo(ctx context.Context, userID, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

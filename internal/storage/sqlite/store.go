// Package sqlite provides a file-backed store used when no Postgres URL is
// configured, and by the test suite. It mirrors the Postgres store's
// behavior over database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	// sqlite driver
	_ "modernc.org/sqlite"

	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store wraps a sql.DB connection to a SQLite database.
type Store struct {
	conn *sql.DB
}

// New opens the database file and runs migrations.
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps the foreign_keys pragma in effect and
	// sidesteps SQLite write-lock contention.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			montant TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date_for TEXT,
			time_for TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ---- users ----

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// DeleteUserByUsername removes a user; owned records cascade.
func (s *Store) DeleteUserByUsername(ctx context.Context, username string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---- expenses ----

// montant is stored as TEXT, so ordering casts it back to a number.
func expenseOrderClause(ordering string) string {
	switch ordering {
	case "montant":
		return "CAST(montant AS REAL) ASC, id ASC"
	case "-montant":
		return "CAST(montant AS REAL) DESC, id ASC"
	case "date":
		return "date ASC, id ASC"
	default:
		return "date DESC, id ASC"
	}
}

// ListExpenses returns the owner's expenses, filtered and ordered.
func (s *Store) ListExpenses(ctx context.Context, userID int64, filter storage.ExpenseFilter) ([]models.Expense, error) {
	query := `SELECT id, user_id, title, montant, category, description, date FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if filter.Search != "" {
		query += ` AND (LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(category) LIKE '%' || LOWER(?) || '%')`
		args = append(args, filter.Search, filter.Search)
	}
	query += ` ORDER BY ` + expenseOrderClause(filter.Ordering)

	rows, err := s.conn.QueryContext(ctx, query, args...)
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
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO expenses (user_id, title, montant, category, description, date) VALUES (?, ?, ?, ?, ?, ?)`,
		expense.UserID, expense.Title, expense.Montant.StringFixed(2), expense.Category, expense.Description, expense.Date,
	)
	if err != nil {
		return models.Expense{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Expense{}, err
	}
	expense.ID = id
	return expense, nil
}

// GetExpense fetches one expense scoped to its owner.
func (s *Store) GetExpense(ctx context.Context, userID, id int64) (models.Expense, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, montant, category, description, date FROM expenses WHERE id = ? AND user_id = ?`,
		id, userID)
	var e models.Expense
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Montant, &e.Category, &e.Description, &e.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, storage.ErrNotFound
		}
		return models.Expense{}, err
	}
	return e, nil
}

// UpdateExpense rewrites the mutable fields; the creation date is immutable.
func (s *Store) UpdateExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE expenses SET title = ?, montant = ?, category = ?, description = ? WHERE id = ? AND user_id = ?`,
		expense.Title, expense.Montant.StringFixed(2), expense.Category, expense.Description, expense.ID, expense.UserID,
	)
	if err != nil {
		return models.Expense{}, err
	}
	if err := requireAffected(res); err != nil {
		return models.Expense{}, err
	}
	return s.GetExpense(ctx, expense.UserID, expense.ID)
}

// DeleteExpense removes one expense scoped to its owner.
func (s *Store) DeleteExpense(ctx context.Context, userID, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ---- notes ----

// ListNotes returns the owner's notes, most recently modified first.
func (s *Store) ListNotes(ctx context.Context, userID int64, filter storage.NoteFilter) ([]models.Note, error) {
	query := `SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE user_id = ?`
	args := []any{userID}
	if filter.Search != "" {
		query += ` AND (LOWER(title) LIKE '%' || LOWER(?) || '%' OR LOWER(content) LIKE '%' || LOWER(?) || '%')`
		args = append(args, filter.Search, filter.Search)
	}
	query += ` ORDER BY updated_at DESC, id DESC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
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
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO notes (user_id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return models.Note{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Note{}, err
	}
	note.ID = id
	return note, nil
}

// GetNote fetches one note scoped to its owner.
func (s *Store) GetNote(ctx context.Context, userID, id int64) (models.Note, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes WHERE id = ? AND user_id = ?`,
		id, userID)
	var n models.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, storage.ErrNotFound
		}
		return models.Note{}, err
	}
	return n, nil
}

// UpdateNote rewrites the mutable fields and refreshes updated_at.
func (s *Store) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		note.Title, note.Content, note.UpdatedAt, note.ID, note.UserID,
	)
	if err != nil {
		return models.Note{}, err
	}
	if err := requireAffected(res); err != nil {
		return models.Note{}, err
	}
	return s.GetNote(ctx, note.UserID, note.ID)
}

// DeleteNote removes one note scoped to its owner.
func (s *Store) DeleteNote(ctx context.Context, userID, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ---- todos ----

// ListTodos returns the owner's todos, most recently created first.
func (s *Store) ListTodos(ctx context.Context, userID int64, filter storage.TodoFilter) ([]models.Todo, error) {
	query := `SELECT id, user_id, title, description, date_for, time_for, completed, created_at, updated_at FROM todos WHERE user_id = ?`
	args := []any{userID}
	if filter.Search != "" {
		query += ` AND LOWER(title) LIKE '%' || LOWER(?) || '%'`
		args = append(args, filter.Search)
	}
	if filter.Completed != nil {
		query += ` AND completed = ?`
		args = append(args, *filter.Completed)
	}
	if filter.DateFor != nil {
		query += ` AND date_for = ?`
		args = append(args, *filter.DateFor)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
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
	res, err := s.conn.ExecContext(ctx,
		`INSERT INTO todos (user_id, title, description, date_for, time_for, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.UserID, todo.Title, todo.Description, todo.DateFor, todo.TimeFor, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return models.Todo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, err
	}
	todo.ID = id
	return todo, nil
}

// GetTodo fetches one todo scoped to its owner.
func (s *Store) GetTodo(ctx context.Context, userID, id int64) (models.Todo, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, date_for, time_for, completed, created_at, updated_at
		 FROM todos WHERE id = ? AND user_id = ?`,
		id, userID)
	var t models.Todo
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DateFor, &t.TimeFor, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}
	return t, nil
}

// UpdateTodo rewrites the mutable fields and refreshes updated_at.
func (s *Store) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, date_for = ?, time_for = ?, completed = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		todo.Title, todo.Description, todo.DateFor, todo.TimeFor, todo.Completed, todo.UpdatedAt, todo.ID, todo.UserID,
	)
	if err != nil {
		return models.Todo{}, err
	}
	if err := requireAffected(res); err != nil {
		return models.Todo{}, err
	}
	return s.GetTodo(ctx, todo.UserID, todo.ID)
}

// ToggleTodoCompleted flips the completion flag and returns the new value.
func (s *Store) ToggleTodoCompleted(ctx context.Context, userID, id int64) (bool, error) {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE todos SET completed = NOT completed, updated_at = ? WHERE id = ? AND user_id = ?`,
		time.Now().UTC(), id, userID,
	)
	if err != nil {
		return false, err
	}
	if err := requireAffected(res); err != nil {
		return false, err
	}
	var completed bool
	err = s.conn.QueryRowContext(ctx,
		`SELECT completed FROM todos WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&completed)
	if err != nil {
		return false, err
	}
	return completed, nil
}

// DeleteTodo removes one todo scoped to its owner.
func (s *Store) DeleteTodo(ctx context.Context, userID, id int64) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

package storage

import (
	"context"
	"errors"

	"github.com/landy-dev/organizer-be/internal/models"
)

// ErrNotFound indicates a record does not exist or is owned by another
// account; callers cannot tell the two cases apart.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ExpenseFilter narrows and orders an owner-scoped expense listing.
// Ordering is one of montant, -montant, date, -date; anything else falls
// back to the default -date. Ties always break by insertion order.
type ExpenseFilter struct {
	Search   string
	Ordering string
}

// NoteFilter narrows an owner-scoped note listing.
type NoteFilter struct {
	Search string
}

// TodoFilter narrows an owner-scoped todo listing. Completed and DateFor
// are exact-match filters when non-nil.
type TodoFilter struct {
	Search    string
	Completed *bool
	DateFor   *string
}

// UserStore captures account persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	DeleteUserByUsername(ctx context.Context, username string) error
}

// ExpenseStore captures owner-scoped expense persistence. Every query
// filters by the owning user id.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, userID int64, filter ExpenseFilter) ([]models.Expense, error)
	CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	GetExpense(ctx context.Context, userID, id int64) (models.Expense, error)
	UpdateExpense(ctx context.Context, expense models.Expense) (models.Expense, error)
	DeleteExpense(ctx context.Context, userID, id int64) error
}

// NoteStore captures owner-scoped note persistence.
type NoteStore interface {
	ListNotes(ctx context.Context, userID int64, filter NoteFilter) ([]models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, userID, id int64) (models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, userID, id int64) error
}

// TodoStore captures owner-scoped todo persistence.
type TodoStore interface {
	ListTodos(ctx context.Context, userID int64, filter TodoFilter) ([]models.Todo, error)
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	GetTodo(ctx context.Context, userID, id int64) (models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	ToggleTodoCompleted(ctx context.Context, userID, id int64) (bool, error)
	DeleteTodo(ctx context.Context, userID, id int64) error
}

// Store bundles every persistence concern behind one handle.
type Store interface {
	UserStore
	ExpenseStore
	NoteStore
	TodoStore
	Close() error
}

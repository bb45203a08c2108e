package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, username string) models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return user
}

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	require.NoError(t, err)
	return d
}

func strPtr(s string) *string { return &s }

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "alice")
	_, err := s.CreateUser(ctx, models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindByUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, s, "alice")
	found, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "alice@example.com", found.Email)

	_, err = s.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteUserCascadesOwnedRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "alice")
	expense, err := s.CreateExpense(ctx, models.Expense{
		UserID: user.ID, Title: "Lunch", Montant: dec(t, "12.50"), Category: "food", Date: "2026-03-10",
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUserByUsername(ctx, "alice"))

	_, err = s.GetExpense(ctx, user.ID, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteUserByUsername(ctx, "alice"), storage.ErrNotFound)
}

func TestExpenseOwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	expense, err := s.CreateExpense(ctx, models.Expense{
		UserID: alice.ID, Title: "Lunch", Montant: dec(t, "12.50"), Category: "food", Date: "2026-03-10",
	})
	require.NoError(t, err)

	// The other account cannot see, change, or delete the record.
	_, err = s.GetExpense(ctx, bob.ID, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	expense.UserID = bob.ID
	_, err = s.UpdateExpense(ctx, expense)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteExpense(ctx, bob.ID, expense.ID), storage.ErrNotFound)

	list, err := s.ListExpenses(ctx, bob.ID, storage.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListExpensesOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	seed := []struct {
		title   string
		montant string
		date    string
	}{
		{"Groceries", "30.00", "2026-03-08"},
		{"Bus", "2.50", "2026-03-10"},
		{"Lunch", "12.50", "2026-03-10"},
		{"Pharmacy", "9.99", "2026-03-09"},
	}
	for _, e := range seed {
		_, err := s.CreateExpense(ctx, models.Expense{
			UserID: user.ID, Title: e.title, Montant: dec(t, e.montant), Category: "other", Date: e.date,
		})
		require.NoError(t, err)
	}

	titles := func(list []models.Expense) []string {
		out := make([]string, len(list))
		for i, e := range list {
			out[i] = e.Title
		}
		return out
	}

	// Default: newest date first, insertion order on ties.
	list, err := s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bus", "Lunch", "Pharmacy", "Groceries"}, titles(list))

	list, err = s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{Ordering: "montant"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bus", "Pharmacy", "Lunch", "Groceries"}, titles(list))

	list, err = s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{Ordering: "-montant"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Lunch", "Pharmacy", "Bus"}, titles(list))

	list, err = s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{Ordering: "date"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries", "Pharmacy", "Bus", "Lunch"}, titles(list))
}

func TestListExpensesSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	_, err := s.CreateExpense(ctx, models.Expense{
		UserID: user.ID, Title: "Lunch downtown", Montant: dec(t, "12.50"), Category: "food", Date: "2026-03-10",
	})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, models.Expense{
		UserID: user.ID, Title: "Bus pass", Montant: dec(t, "45.00"), Category: "transport", Date: "2026-03-10",
	})
	require.NoError(t, err)

	list, err := s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{Search: "LUNCH"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lunch downtown", list[0].Title)

	// Search also matches categories.
	list, err = s.ListExpenses(ctx, user.ID, storage.ExpenseFilter{Search: "transport"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bus pass", list[0].Title)
}

func TestUpdateExpenseKeepsDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	expense, err := s.CreateExpense(ctx, models.Expense{
		UserID: user.ID, Title: "Lunch", Montant: dec(t, "12.50"), Category: "food", Date: "2026-03-10",
	})
	require.NoError(t, err)

	expense.Title = "Team lunch"
	expense.Montant = dec(t, "48.00")
	updated, err := s.UpdateExpense(ctx, expense)
	require.NoError(t, err)
	assert.Equal(t, "Team lunch", updated.Title)
	assert.True(t, updated.Montant.Equal(dec(t, "48.00")))
	assert.Equal(t, "2026-03-10", updated.Date)
}

func TestListNotesOrderedByUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older, err := s.CreateNote(ctx, models.Note{
		UserID: user.ID, Title: "First", CreatedAt: base, UpdatedAt: base,
	})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, models.Note{
		UserID: user.ID, Title: "Second", CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	list, err := s.ListNotes(ctx, user.ID, storage.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)

	// Touching the older note moves it to the front.
	older.UpdatedAt = base.Add(2 * time.Minute)
	_, err = s.UpdateNote(ctx, older)
	require.NoError(t, err)

	list, err = s.ListNotes(ctx, user.ID, storage.NoteFilter{})
	require.NoError(t, err)
	assert.Equal(t, "First", list[0].Title)
}

func TestListNotesSearchMatchesContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	_, err := s.CreateNote(ctx, models.Note{
		UserID: user.ID, Title: "Groceries", Content: "milk, eggs, bread", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	_, err = s.CreateNote(ctx, models.Note{
		UserID: user.ID, Title: "Ideas", Content: "side project", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	list, err := s.ListNotes(ctx, user.ID, storage.NoteFilter{Search: "eggs"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Groceries", list[0].Title)
}

func TestTodoFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seed := []models.Todo{
		{UserID: user.ID, Title: "Call dentist", DateFor: strPtr("2026-03-12"), TimeFor: strPtr("09:00:00"), CreatedAt: now, UpdatedAt: now},
		{UserID: user.ID, Title: "Pay rent", DateFor: strPtr("2026-03-15"), TimeFor: strPtr("18:00:00"), Completed: true, CreatedAt: now.Add(time.Minute), UpdatedAt: now.Add(time.Minute)},
		{UserID: user.ID, Title: "Water plants", CreatedAt: now.Add(2 * time.Minute), UpdatedAt: now.Add(2 * time.Minute)},
	}
	for _, todo := range seed {
		_, err := s.CreateTodo(ctx, todo)
		require.NoError(t, err)
	}

	list, err := s.ListTodos(ctx, user.ID, storage.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Newest creation first.
	assert.Equal(t, "Water plants", list[0].Title)

	completed := true
	list, err = s.ListTodos(ctx, user.ID, storage.TodoFilter{Completed: &completed})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pay rent", list[0].Title)

	list, err = s.ListTodos(ctx, user.ID, storage.TodoFilter{DateFor: strPtr("2026-03-12")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Call dentist", list[0].Title)

	list, err = s.ListTodos(ctx, user.ID, storage.TodoFilter{Search: "rent"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pay rent", list[0].Title)
}

func TestToggleTodoCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	todo, err := s.CreateTodo(ctx, models.Todo{UserID: user.ID, Title: "Task", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	completed, err := s.ToggleTodoCompleted(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = s.ToggleTodoCompleted(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, completed)

	_, err = s.ToggleTodoCompleted(ctx, user.ID, todo.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateTodoClearsDueMoment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	todo, err := s.CreateTodo(ctx, models.Todo{
		UserID: user.ID, Title: "Task",
		DateFor: strPtr("2026-03-12"), TimeFor: strPtr("09:00:00"),
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	todo.DateFor = nil
	todo.TimeFor = nil
	updated, err := s.UpdateTodo(ctx, todo)
	require.NoError(t, err)
	assert.Nil(t, updated.DateFor)
	assert.Nil(t, updated.TimeFor)
}

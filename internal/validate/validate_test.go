package validate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		password2 string
		wantField string
		wantMsg   string
	}{
		{
			name:     "valid input",
			username: "alice", email: "alice@example.com",
			password: "s3cure-pass!", password2: "s3cure-pass!",
		},
		{
			name:     "mismatched confirmation",
			username: "alice", email: "alice@example.com",
			password: "s3cure-pass!", password2: "another-pass!",
			wantField: "password", wantMsg: "Les mots de passe ne correspondent pas.",
		},
		{
			name:     "too short",
			username: "alice", email: "alice@example.com",
			password: "tiny!", password2: "tiny!",
			wantField: "password",
		},
		{
			name:     "entirely numeric",
			username: "alice", email: "alice@example.com",
			password: "8675309112358", password2: "8675309112358",
			wantField: "password",
		},
		{
			name:     "contains username",
			username: "alice", email: "alice@example.com",
			password: "alice2026!!", password2: "alice2026!!",
			wantField: "password",
		},
		{
			name:  "missing username",
			email: "alice@example.com", password: "s3cure-pass!", password2: "s3cure-pass!",
			wantField: "username",
		},
		{
			name:     "malformed email",
			username: "alice", email: "not-an-address",
			password: "s3cure-pass!", password2: "s3cure-pass!",
			wantField: "email",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Registration(tc.username, tc.email, tc.password, tc.password2, 8)
			if tc.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			require.Contains(t, errs, tc.wantField)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, errs[tc.wantField])
			}
		})
	}
}

func TestRegistrationMismatchReportedBeforeStrength(t *testing.T) {
	// A mismatch must always surface on the password field, even when the
	// password would also fail the strength policy.
	errs := Registration("alice", "alice@example.com", "ab", "cd", 8)
	require.Contains(t, errs, "password")
	assert.Equal(t, "Les mots de passe ne correspondent pas.", errs["password"])
}

func TestExpense(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		montant   *decimal.Decimal
		category  string
		wantField string
	}{
		{name: "valid", title: "Lunch", montant: decPtr(t, "12.50"), category: "food"},
		{name: "integer amount", title: "Bus", montant: decPtr(t, "2"), category: "transport"},
		{name: "blank title", title: "  ", montant: decPtr(t, "12.50"), category: "food", wantField: "title"},
		{name: "missing montant", title: "Lunch", category: "food", wantField: "montant"},
		{name: "three decimal places", title: "Lunch", montant: decPtr(t, "12.505"), category: "food", wantField: "montant"},
		{name: "too many digits", title: "Lunch", montant: decPtr(t, "123456789.00"), category: "food", wantField: "montant"},
		{name: "unknown category", title: "Lunch", montant: decPtr(t, "12.50"), category: "groceries", wantField: "category"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Expense(tc.title, tc.montant, tc.category)
			if tc.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tc.wantField)
		})
	}
}

func TestNote(t *testing.T) {
	assert.Empty(t, Note("Shopping list"))
	assert.Contains(t, Note(""), "title")
	assert.Contains(t, Note("   "), "title")
}

func TestTodoPairingInvariant(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	errs := Todo("Task", strPtr("2026-03-12"), nil, true, now)
	require.Contains(t, errs, "time_for")
	assert.Equal(t, "L'heure doit être définie si la date est fournie.", errs["time_for"])

	errs = Todo("Task", nil, strPtr("15:00:00"), true, now)
	require.Contains(t, errs, "date_for")
	assert.Equal(t, "La date doit être définie si l'heure est fournie.", errs["date_for"])

	assert.Empty(t, Todo("Task", nil, nil, true, now))
	assert.Empty(t, Todo("Task", strPtr("2026-03-12"), strPtr("15:00:00"), true, now))
}

func TestTodoPastDueOnlyRejectedOnCreation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	date := strPtr("2026-03-09")
	clock := strPtr("08:00:00")

	errs := Todo("Task", date, clock, true, now)
	require.Contains(t, errs, "date_for")
	require.Contains(t, errs, "time_for")
	assert.Equal(t, "La date ne peut pas être dans le passé.", errs["date_for"])
	assert.Equal(t, "L'heure ne peut pas être dans le passé.", errs["time_for"])

	// The identical payload is accepted as an update.
	assert.Empty(t, Todo("Task", date, clock, false, now))
}

func TestTodoFieldChecks(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	assert.Contains(t, Todo("", nil, nil, true, now), "title")

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	assert.Contains(t, Todo(string(long), nil, nil, true, now), "title")

	assert.Contains(t, Todo("Task", strPtr("12/03/2026"), strPtr("15:00:00"), true, now), "date_for")
	assert.Contains(t, Todo("Task", strPtr("2026-03-12"), strPtr("3pm"), true, now), "time_for")
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "15:04:00", NormalizeClock("15:04"))
	assert.Equal(t, "15:04:05", NormalizeClock("15:04:05"))
	assert.Equal(t, "bogus", NormalizeClock("bogus"))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		dateFor *string
		timeFor *string
		want    string
	}{
		{
			name:    "two days three hours fifteen minutes ahead",
			dateFor: strPtr("2026-03-12"),
			timeFor: strPtr("15:15:00"),
			want:    "2j 3h 15min",
		},
		{
			name:    "seconds are truncated not rounded",
			dateFor: strPtr("2026-03-12"),
			timeFor: strPtr("15:15:59"),
			want:    "2j 3h 15min",
		},
		{
			name:    "under an hour",
			dateFor: strPtr("2026-03-10"),
			timeFor: strPtr("12:42:00"),
			want:    "0j 0h 42min",
		},
		{
			name:    "deadline passed",
			dateFor: strPtr("2026-03-09"),
			timeFor: strPtr("08:00:00"),
			want:    "Échéance dépassée",
		},
		{
			name:    "due exactly now counts as passed",
			dateFor: strPtr("2026-03-10"),
			timeFor: strPtr("12:00:00"),
			want:    "Échéance dépassée",
		},
		{
			name: "no due date set",
			want: "Date non définie",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			todo := Todo{DateFor: tc.dateFor, TimeFor: tc.timeFor}
			assert.Equal(t, tc.want, todo.TimeRemaining(now))
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	due, ok := CombineDateTime("2026-03-12", "15:15:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 12, 15, 15, 30, 0, time.Local), due)

	_, ok = CombineDateTime("12/03/2026", "15:15:00")
	assert.False(t, ok)
	_, ok = CombineDateTime("2026-03-12", "quarter past three")
	assert.False(t, ok)
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("groceries"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Food"))
}

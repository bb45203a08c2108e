package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", "organizer-backend", time.Minute, time.Hour)

	access, refresh, err := tm.GeneratePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	userID, err := tm.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	userID, err = tm.ValidateRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", "organizer-backend", time.Minute, time.Hour)

	access, refresh, err := tm.GeneratePair(42)
	require.NoError(t, err)

	_, err = tm.ValidateAccess(refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = tm.ValidateRefresh(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", "organizer-backend", -time.Minute, time.Hour)

	access, err := tm.GenerateAccess(42)
	require.NoError(t, err)

	_, err = tm.ValidateAccess(access)
	assert.Error(t, err)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	theirs := NewTokenManager("their-secret", "organizer-backend", time.Minute, time.Hour)
	ours := NewTokenManager("our-secret", "organizer-backend", time.Minute, time.Hour)

	access, err := theirs.GenerateAccess(42)
	require.NoError(t, err)

	_, err = ours.ValidateAccess(access)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	other := NewTokenManager("unit-test-secret", "someone-else", time.Minute, time.Hour)
	tm := NewTokenManager("unit-test-secret", "organizer-backend", time.Minute, time.Hour)

	access, err := other.GenerateAccess(42)
	require.NoError(t, err)

	_, err = tm.ValidateAccess(access)
	assert.Error(t, err)
}

func TestGetBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "well formed", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "scheme without token", header: "Bearer   ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			headers := http.Header{}
			if tc.header != "" {
				headers.Set("Authorization", tc.header)
			}
			got, err := GetBearerToken(headers)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

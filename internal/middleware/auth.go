package middleware

import (
	"context"
	"net/http"

	"github.com/landy-dev/organizer-be/internal/auth"
	"github.com/landy-dev/organizer-be/internal/http/respond"
)

type ctxKey string

const ctxAccountID ctxKey = "account_id"

// RequireAuth validates the bearer token and stores the authenticated
// account id in the request context before passing the request on. No
// resource access is attempted when the token is missing or invalid.
func RequireAuth(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := auth.GetBearerToken(r.Header)
		if err != nil {
			respond.Err(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}
		userID, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			respond.Err(w, http.StatusUnauthorized, "token is invalid or expired")
			return
		}
		ctx := context.WithValue(r.Context(), ctxAccountID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AccountID retrieves the authenticated account id set by RequireAuth.
func AccountID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxAccountID).(int64)
	return id, ok
}

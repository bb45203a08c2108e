// Package handlers implements the HTTP surface of the API. Every resource
// handler receives the authenticated account id from the request context
// and threads it into each storage call; ownership is never ambient.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/landy-dev/organizer-be/internal/http/respond"
	"github.com/landy-dev/organizer-be/internal/middleware"
)

func decodePayload[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	defer r.Body.Close()
	if err != nil {
		return v, fmt.Errorf("failure decoding request payload: %w", err)
	}
	return v, nil
}

// accountID pulls the authenticated account out of the request context.
// The auth middleware guarantees it is present on protected routes.
func accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		respond.Err(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Err(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

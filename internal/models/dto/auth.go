package dto

// RegisterRequest is the sign-up payload. Password2 is the confirmation
// field; it is compared, then discarded before anything is persisted.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// RegisterResponse exposes only the created account's public fields.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest carries the credentials presented to the token endpoint.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the access/refresh pair returned on login.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the fresh access token.
type RefreshResponse struct {
	Access string `json:"access"`
}

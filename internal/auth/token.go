// Package auth issues and validates the signed JWT pairs used by the API.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a refresh token is presented where an
// access token is required, or the other way around.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims is the payload carried by every issued token.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues signed access/refresh JWT pairs for authenticated users.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetimes.
func NewTokenManager(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GeneratePair issues an access and a refresh token for the user.
func (t *TokenManager) GeneratePair(userID int64) (access, refresh string, err error) {
	access, err = t.generate(userID, tokenTypeAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.generate(userID, tokenTypeRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// GenerateAccess issues a fresh access token, as returned by the refresh endpoint.
func (t *TokenManager) GenerateAccess(userID int64) (string, error) {
	return t.generate(userID, tokenTypeAccess, t.accessTTL)
}

func (t *TokenManager) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateAccess checks an access token and returns the user id it names.
func (t *TokenManager) ValidateAccess(tokenString string) (int64, error) {
	return t.validate(tokenString, tokenTypeAccess)
}

// ValidateRefresh checks a refresh token and returns the user id it names.
func (t *TokenManager) ValidateRefresh(tokenString string) (int64, error) {
	return t.validate(tokenString, tokenTypeRefresh)
}

func (t *TokenManager) validate(tokenString, wantType string) (int64, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	if claims.TokenType != wantType {
		return 0, ErrWrongTokenType
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return userID, nil
}

// GetBearerToken extracts the token string from an Authorization header.
func GetBearerToken(headers http.Header) (string, error) {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing or empty")
	}
	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return "", errors.New("no bearer token found")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("bearer presented without token")
	}
	return strings.TrimSpace(parts[1]), nil
}

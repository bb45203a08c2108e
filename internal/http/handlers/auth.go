package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/landy-dev/organizer-be/internal/auth"
	"github.com/landy-dev/organizer-be/internal/http/respond"
	"github.com/landy-dev/organizer-be/internal/models"
	"github.com/landy-dev/organizer-be/internal/models/dto"
	"github.com/landy-dev/organizer-be/internal/storage"
	"github.com/landy-dev/organizer-be/internal/validate"
)

// AuthHandler owns the registration and token endpoints.
type AuthHandler struct {
	users          storage.UserStore
	tokens         *auth.TokenManager
	passwordMinLen int
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, passwordMinLen int) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, passwordMinLen: passwordMinLen}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register/{$}", h.handleRegister)
	mux.HandleFunc("POST /api/token/{$}", h.handleToken)
	mux.HandleFunc("POST /api/token/refresh/{$}", h.handleRefresh)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[dto.RegisterRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if errs := validate.Registration(req.Username, req.Email, req.Password, req.Password2, h.passwordMinLen); len(errs) > 0 {
		respond.FieldErrors(w, errs)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Err(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	// The confirmation field is dropped here; only the hash is stored.
	user := models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
	}
	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.FieldErrors(w, validate.FieldErrors{
				"username": "A user with that username already exists.",
			})
			return
		}
		log.Printf("create user error: %v", err)
		respond.Err(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		ID:       created.ID,
		Username: created.Username,
		Email:    created.Email,
	})
}

func (h *AuthHandler) handleToken(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[dto.TokenRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respond.Err(w, http.StatusBadRequest, "username and password are required")
		return
	}
	user, err := h.users.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("token: fetch user %q: %v", req.Username, err)
		}
		respond.Err(w, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Err(w, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}
	access, refresh, err := h.tokens.GeneratePair(user.ID)
	if err != nil {
		respond.Err(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{Access: access, Refresh: refresh})
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[dto.RefreshRequest](r)
	if err != nil {
		respond.Err(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Refresh) == "" {
		respond.Err(w, http.StatusBadRequest, "refresh token is required")
		return
	}
	userID, err := h.tokens.ValidateRefresh(req.Refresh)
	if err != nil {
		respond.Err(w, http.StatusUnauthorized, "token is invalid or expired")
		return
	}
	access, err := h.tokens.GenerateAccess(userID)
	if err != nil {
		respond.Err(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.RefreshResponse{Access: access})
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/micropost/micropost-go/internal/crypto"
	"github.com/micropost/micropost-go/internal/metrics"
	"github.com/micropost/micropost-go/internal/middleware"
	"github.com/micropost/micropost-go/internal/models"
	"github.com/micropost/micropost-go/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Secret   []byte
	TokenTTL time.Duration
}

// publicUser is the registration/login projection of a user. The password
// hash is never part of any response.
type publicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Bio      *string `json:"bio"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "required"
	}
	if input.Email == "" {
		fields["email"] = "required"
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	// Pre-check so the common duplicate case fails before any write. The
	// unique index still decides races between concurrent registrations.
	if _, err := h.Users.GetByEmail(r.Context(), input.Email); err == nil {
		JSONError(w, "user already exists", http.StatusBadRequest)
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		slog.Error("register: email lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: password hash failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// Bio defaults only when the field is absent; an explicit empty string is kept.
	bio := models.DefaultBio
	if input.Bio != nil {
		bio = *input.Bio
	}

	user, err := h.Users.Create(r.Context(), input.Name, input.Email, hash, bio)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			JSONError(w, "user already exists", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncUsersRegistered()
	h.respondWithToken(w, user)
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), input.Email)
	if err != nil {
		// Unknown email and wrong password produce the same response, so
		// the endpoint cannot be used to enumerate accounts.
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "invalid credentials", http.StatusBadRequest)
			return
		}
		slog.Error("login: email lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		JSONError(w, "invalid credentials", http.StatusBadRequest)
		return
	}

	h.respondWithToken(w, user)
}

// ==========================
// Me (current user from token)
// ==========================
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "no token, authorization denied", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "user not found", http.StatusNotFound)
			return
		}
		slog.Error("me: user lookup failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, user)
}

// respondWithToken issues a token for the user and writes the shared
// register/login response shape. Signing failure is a server error; an
// unsigned or partial token is never returned.
func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	token, err := crypto.GenerateToken(user.ID, h.Secret, h.TokenTTL)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, authResponse{
		Token: token,
		User: publicUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Bio:   user.Bio,
		},
	})
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/micropost/micropost-go/internal/repo"
)

// ==========================
// User Handler
// ==========================
type UserHandler struct {
	Users *repo.UserRepo
	Posts *repo.PostRepo
}

// parseUserID extracts and validates the {userID} route parameter. A
// malformed id is a 400, distinct from the 404 for a well-formed id with no
// matching row.
func parseUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// ==========================
// Get User (public profile)
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "user not found", http.StatusNotFound)
			return
		}
		slog.Error("get user failed", "error", err, "user_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, user)
}

// ==========================
// Get User's Posts
// ==========================

// ListUserPosts returns the user's posts newest-first. A user id with no
// posts (or no user at all) yields an empty array, matching the feed shape.
func (h *UserHandler) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	posts, err := h.Posts.ListByAuthor(r.Context(), id)
	if err != nil {
		slog.Error("list user posts failed", "error", err, "user_id", id)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, posts)
}

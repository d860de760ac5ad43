package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/micropost/micropost-go/internal/metrics"
	"github.com/micropost/micropost-go/internal/middleware"
	"github.com/micropost/micropost-go/internal/repo"
)

// ==========================
// Post Handler
// ==========================
type PostHandler struct {
	Posts *repo.PostRepo
}

// ==========================
// Create Post (protected)
// ==========================

// CreatePost creates a post owned by the authenticated caller. The author id
// comes from the verified token, never from the request body.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "no token, authorization denied", http.StatusUnauthorized)
		return
	}

	var input struct {
		Content string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Content == "" {
		JSONValidationError(w, "validation failed", map[string]string{"content": "required"}, http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Create(r.Context(), authorID, input.Content)
	if err != nil {
		// ErrAuthorNotFound can only mean the authenticated user's row is
		// gone; there is nothing the client can do about that.
		slog.Error("create post failed", "error", err, "author_id", authorID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncPostsCreated()
	JSON(w, post)
}

// ==========================
// List Posts (public feed)
// ==========================
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListAll(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, posts)
}

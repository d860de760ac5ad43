package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/micropost/micropost-go/internal/repo"
)

var postColumns = []string{"id", "content", "author_id", "created_at", "id", "name"}

func TestPostHandler_CreatePost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO posts \(content, author_id\)`).
		WithArgs("hi", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "created_at"}).
			AddRow(10, "hi", 1, now))
	mock.ExpectQuery(`SELECT id, name FROM users`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Ann"))

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	body, _ := json.Marshal(map[string]string{"content": "hi"})
	req := httptest.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req = req.WithContext(authContext(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("CreatePost status: got %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	var out struct {
		ID       int    `json:"id"`
		Content  string `json:"content"`
		AuthorID int    `json:"authorId"`
		Author   struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"author"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != 10 || out.Content != "hi" || out.AuthorID != 1 {
		t.Errorf("unexpected post: %+v", out)
	}
	if out.Author.ID != 1 || out.Author.Name != "Ann" {
		t.Errorf("unexpected author summary: %+v", out.Author)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_EmptyContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	body, _ := json.Marshal(map[string]string{"content": ""})
	req := httptest.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req = req.WithContext(authContext(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreatePost status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_Unauthenticated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	// No auth context: the handler must refuse rather than trust the body.
	body, _ := json.Marshal(map[string]string{"content": "hi"})
	req := httptest.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("CreatePost status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_StoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO posts \(content, author_id\)`).
		WithArgs("hi", 1).
		WillReturnError(errors.New("connection refused"))

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	body, _ := json.Marshal(map[string]string{"content": "hi"})
	req := httptest.NewRequest("POST", "/api/posts", bytes.NewReader(body))
	req = req.WithContext(authContext(req.Context(), 1))
	rr := httptest.NewRecorder()
	h.CreatePost(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("CreatePost status: got %d, want 500", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["error"] != ErrMessageInternal {
		t.Errorf("500 body must be opaque, got %q", out["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListPosts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	newer := time.Now()
	older := newer.Add(-time.Minute)
	mock.ExpectQuery(`SELECT p.id, p.content, p.author_id, p.created_at, u.id, u.name`).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(2, "second", 1, newer, 1, "Ann").
			AddRow(1, "first", 1, older, 1, "Ann"))

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rr := httptest.NewRecorder()
	h.ListPosts(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ListPosts status: got %d, want 200", rr.Code)
	}
	var out []struct {
		ID     int `json:"id"`
		Author struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[0].Author.Name != "Ann" {
		t.Errorf("unexpected feed: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListPosts_EmptyFeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.content, p.author_id, p.created_at, u.id, u.name`).
		WillReturnRows(sqlmock.NewRows(postColumns))

	h := &PostHandler{Posts: repo.NewPostRepo(db)}

	req := httptest.NewRequest("GET", "/api/posts", nil)
	rr := httptest.NewRecorder()
	h.ListPosts(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ListPosts status: got %d, want 200", rr.Code)
	}
	if got := bytes.TrimSpace(rr.Body.Bytes()); string(got) != "[]" {
		t.Errorf("empty feed must serialize as [], got %s", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

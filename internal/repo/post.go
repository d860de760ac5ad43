package repo

import (
	"context"
	"database/sql"

	"github.com/micropost/micropost-go/internal/models"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ==========================
// Create Post
// ==========================

// Create inserts a post for the given author and returns it enriched with
// the author summary. authorID must reference an existing user; a
// foreign-key violation is returned as ErrAuthorNotFound and no row is
// written.
func (r *PostRepo) Create(ctx context.Context, authorID int, content string) (*models.Post, error) {
	query := `
		INSERT INTO posts (content, author_id)
		VALUES ($1, $2)
		RETURNING id, content, author_id, created_at
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, content, authorID).
		Scan(&post.ID, &post.Content, &post.AuthorID, &post.CreatedAt)

	if err != nil {
		if isPqCode(err, pqForeignKeyViolation) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	// Fetch-then-stitch the author summary, like the feed queries do.
	author := models.AuthorSummary{}
	err = r.DB.QueryRowContext(ctx, `SELECT id, name FROM users WHERE id = $1`, authorID).
		Scan(&author.ID, &author.Name)
	if err != nil {
		return nil, err
	}
	post.Author = &author

	return post, nil
}

// ==========================
// List All Posts
// ==========================

// ListAll returns every post, newest first, each carrying its author
// summary. The ordering is part of the feed contract.
func (r *PostRepo) ListAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, p.created_at, u.id, u.name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ==========================
// List Posts By Author
// ==========================
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID int) ([]models.Post, error) {
	query := `
		SELECT p.id, p.content, p.author_id, p.created_at, u.id, u.name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// scanPosts reads joined post+author rows. Returns an empty slice, not nil,
// so an empty feed serializes as [].
func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		var author models.AuthorSummary
		if err := rows.Scan(&p.ID, &p.Content, &p.AuthorID, &p.CreatedAt, &author.ID, &author.Name); err != nil {
			return nil, err
		}
		p.Author = &author
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

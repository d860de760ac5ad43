package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/micropost/micropost-go/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================

// Create inserts a new user. passwordHash must already be hashed; this layer
// never sees plaintext passwords. A unique-constraint violation on email is
// returned as ErrDuplicateEmail so concurrent registrations resolve to
// exactly one winner.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, bio string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, bio, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, name, email, passwordHash, bio).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Bio, &user.CreatedAt)

	if err != nil {
		if isPqCode(err, pqUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, created_at
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Bio, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, created_at
		FROM users
		WHERE email = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Bio, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var userColumns = []string{"id", "name", "email", "password_hash", "bio", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, bio\)`).
		WithArgs("Ann", "ann@x.com", "$2a$10$hash", "No bio yet.").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "Ann", "ann@x.com", "$2a$10$hash", "No bio yet.", now))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "Ann", "ann@x.com", "$2a$10$hash", "No bio yet.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Name != "Ann" || user.Email != "ann@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, bio\)`).
		WithArgs("Ann", "ann@x.com", "$2a$10$hash", "No bio yet.").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "Ann", "ann@x.com", "$2a$10$hash", "No bio yet.")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, bio, created_at`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "Bob", "bob@x.com", "$2a$10$hash", "No bio yet.", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.ID != 1 || user.Name != "Bob" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, bio, created_at`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, bio, created_at`).
		WithArgs("carol@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "Carol", "carol@x.com", "$2a$10$hash", "hi", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByEmail(context.Background(), "carol@x.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != 2 || user.Email != "carol@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, bio, created_at`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

package repo

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAuthorNotFound means a post references a user id that does not exist.
	ErrAuthorNotFound = errors.New("author not found")
)

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isPqCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Connect opens the shared connection pool for the process lifetime.
// databaseURL is a postgres connection string.
func Connect(databaseURL string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

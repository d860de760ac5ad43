package models

import "time"

// DefaultBio is stored when a registration omits the bio field.
const DefaultBio = "No bio yet."

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthorSummary is the compact {id, name} view of a user attached to posts.
type AuthorSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

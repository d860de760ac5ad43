package models

import "time"

type Post struct {
	ID        int            `json:"id"`
	Content   string         `json:"content"`
	AuthorID  int            `json:"authorId"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    *AuthorSummary `json:"author,omitempty"`
}

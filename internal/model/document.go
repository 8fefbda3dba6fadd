package model

import "time"

// Document represents a unit of uploaded text content that questions can be
// asked about. This is a pure domain model with no database-specific
// dependencies or tags; it can be used across layers (HTTP, service, storage)
// without coupling to persistence.
//
// Filename and Filepath are only set when the upload carried a file: Filename
// keeps the original client-side name, Filepath the object storage key.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Filename  *string    `json:"filename,omitempty"`
	Filepath  *string    `json:"filepath,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

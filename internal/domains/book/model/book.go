package model

import (
	"time"
)

// Book represents a catalog record as stored and returned by the API.
// ID, CreatedAt and UpdatedAt are owned by the store.
type Book struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	PublishedYear int       `json:"publishedYear" db:"published_year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// BookFields is the set of client-settable fields passed from the service to the store.
type BookFields struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"publishedYear"`
}

// Apply overwrites the client-settable fields of b.
func (f BookFields) Apply(b *Book) {
	b.Title = f.Title
	b.Author = f.Author
	b.PublishedYear = f.PublishedYear
}

// ToEntity builds an unsaved Book from the fields.
func (f BookFields) ToEntity() *Book {
	b := &Book{}
	f.Apply(b)
	return b
}

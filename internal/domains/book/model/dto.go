package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// BookInput is the body of POST /books and PUT /books/:id.
// Pointer fields keep "absent" distinguishable from a decoded zero value;
// Required treats nil, "" and 0 alike as missing.
type BookInput struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"publishedYear"`
}

func (r BookInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.PublishedYear, validation.Required.Error("publishedYear is required")),
	)
}

// Fields converts a validated input into store fields.
// Callers must run Validate first.
func (r BookInput) Fields() BookFields {
	return BookFields{
		Title:         *r.Title,
		Author:        *r.Author,
		PublishedYear: *r.PublishedYear,
	}
}

// ========================================
// RESPONSE DTOs
// ========================================

// ListBooksResponse is the body of GET /books.
type ListBooksResponse struct {
	Count int    `json:"count"`
	Data  []Book `json:"data"`
}

// NewListBooksResponse keeps Count in step with Data and never emits a null array.
func NewListBooksResponse(books []Book) ListBooksResponse {
	if books == nil {
		books = []Book{}
	}
	return ListBooksResponse{
		Count: len(books),
		Data:  books,
	}
}

// MessageResponse is the {message} body used for confirmations and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

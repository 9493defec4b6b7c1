package repository

import (
	"context"

	"book-catalog/internal/domains/book/model"
)

// RepositoryInterface is the Resource Store for books.
//
// Implementations never validate field content; they fail with
// model.ErrInvalidID for ids outside their format, model.ErrBookNotFound
// for unknown ids and wrap every driver failure with model.ErrStorage.
type RepositoryInterface interface {
	// Create persists a new record and returns it with id and timestamps set.
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]model.Book, error)

	FindByID(ctx context.Context, id string) (*model.Book, error)

	// UpdateByID overwrites the given fields and bumps updatedAt.
	UpdateByID(ctx context.Context, id string, fields model.BookFields) (*model.Book, error)

	DeleteByID(ctx context.Context, id string) error

	// CanonicalID returns the single spelling of id the store keys records by,
	// or model.ErrInvalidID. Equal ids always canonicalize to the same string.
	CanonicalID(id string) (string, error)

	// Ping reports whether the backing connection is usable.
	Ping(ctx context.Context) error
}

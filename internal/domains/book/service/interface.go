package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/model"
)

// ServiceInterface is the business boundary the HTTP handler talks to.
// Input is validated here, once, before anything reaches the store.
type ServiceInterface interface {
	CreateBook(ctx context.Context, input model.BookInput) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, input model.BookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) error
	ExportBooksToExcel(ctx context.Context) (*excelize.File, error)
	HealthCheck(ctx context.Context) error
}

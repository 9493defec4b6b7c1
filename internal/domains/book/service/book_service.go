package service

import (
	"context"
	"fmt"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
)

// BookService implements ServiceInterface.
type BookService struct {
	repo repository.RepositoryInterface
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{repo: repo}
}

func validateInput(input model.BookInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return nil
}

func (s *BookService) CreateBook(ctx context.Context, input model.BookInput) (*model.Book, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input.Fields().ToEntity())
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook checks the body before the id, so a bad body on an unknown id is a 400.
func (s *BookService) UpdateBook(ctx context.Context, id string, input model.BookInput) (*model.Book, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateByID(ctx, id, input.Fields())
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *BookService) HealthCheck(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

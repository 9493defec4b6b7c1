package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"book-catalog/internal/domains/book/model"
)

// memoryRepository keeps books in process memory. It backs DB_DRIVER=memory
// for local runs and the router tests; data is lost on restart.
type memoryRepository struct {
	mu    sync.RWMutex
	order []string
	books map[string]model.Book
}

// NewMemoryRepository creates an empty in-memory book store with UUID ids.
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		books: make(map[string]model.Book),
	}
}

func (r *memoryRepository) Create(_ context.Context, book *model.Book) (*model.Book, error) {
	ts := time.Now().UTC()
	created := model.Book{
		ID:            uuid.NewString(),
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: book.PublishedYear,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[created.ID] = created
	r.order = append(r.order, created.ID)

	return &created, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.order))
	for _, id := range r.order {
		books = append(books, r.books[id])
	}
	return books, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*model.Book, error) {
	id, err := r.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *memoryRepository) UpdateByID(_ context.Context, id string, fields model.BookFields) (*model.Book, error) {
	id, err := r.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	fields.Apply(&b)
	b.UpdatedAt = time.Now().UTC()
	r.books[id] = b

	return &b, nil
}

func (r *memoryRepository) DeleteByID(_ context.Context, id string) error {
	id, err := r.CanonicalID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// CanonicalID accepts every UUID spelling Postgres accepts and returns the lowercase form.
func (r *memoryRepository) CanonicalID(id string) (string, error) {
	parsed, err := parseID(id)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

func (r *memoryRepository) Ping(_ context.Context) error {
	return nil
}

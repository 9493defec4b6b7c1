package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog/internal/domains/book/model"
)

// postgresRepository stores books in the `books` table (see migrations).
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a book repository backed by a pgx pool
// owned by the container.
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id::text, title, author, published_year, created_at, updated_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.PublishedYear,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// parseID rejects ids that are not UUIDs before they reach the database,
// where they would surface as a cast error.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, model.ErrInvalidID
	}
	return parsed, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, author, published_year)
        VALUES ($1, $2, $3)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.PublishedYear,
	))
	if err != nil {
		return nil, model.WrapStorage("create book", err)
	}
	return created, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY seq ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.WrapStorage("list books", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, model.WrapStorage("scan book", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapStorage("list books", err)
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, model.WrapStorage("get book by id", err)
	}
	return b, nil
}

func (r *postgresRepository) UpdateByID(ctx context.Context, id string, fields model.BookFields) (*model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `
        UPDATE books
        SET title = $2, author = $3, published_year = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookColumns

	b, err := scanBook(r.pool.QueryRow(ctx, query,
		bookID,
		fields.Title,
		fields.Author,
		fields.PublishedYear,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, model.WrapStorage("update book", err)
	}
	return b, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id string) error {
	bookID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return model.WrapStorage("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) CanonicalID(id string) (string, error) {
	parsed, err := parseID(id)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return model.WrapStorage("ping", err)
	}
	return nil
}

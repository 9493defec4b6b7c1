package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/pkg/cache"
)

// Cache key constants
const (
	bookCacheKeyPrefix = "book:"
	bookListCacheKey   = "books:list"
)

// cachedRepository is a cache-aside decorator over another repository.
// Reads go through the cache; every write invalidates the record key and
// the listing. Cache failures are logged and never fail the request.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedRepository wraps next with cache-aside reads.
func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// bookCacheKey expects a canonical id so every spelling of a record shares one key.
func bookCacheKey(canonicalID string) string {
	return bookCacheKeyPrefix + canonicalID
}

func (r *cachedRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

func (r *cachedRepository) store(ctx context.Context, key string, value interface{}) {
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (r *cachedRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	created, err := r.next.Create(ctx, book)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, bookListCacheKey)
	return created, nil
}

func (r *cachedRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	found, err := r.cache.Get(ctx, bookListCacheKey, &books)
	if err != nil {
		log.Warn().Err(err).Str("key", bookListCacheKey).Msg("cache read failed")
	}
	if found {
		return books, nil
	}

	books, err = r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, bookListCacheKey, books)
	return books, nil
}

func (r *cachedRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	canonical, err := r.next.CanonicalID(id)
	if err != nil {
		return nil, err
	}
	key := bookCacheKey(canonical)

	var b model.Book
	found, err := r.cache.Get(ctx, key, &b)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if found {
		return &b, nil
	}

	fetched, err := r.next.FindByID(ctx, canonical)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, fetched)
	return fetched, nil
}

func (r *cachedRepository) UpdateByID(ctx context.Context, id string, fields model.BookFields) (*model.Book, error) {
	canonical, err := r.next.CanonicalID(id)
	if err != nil {
		return nil, err
	}

	updated, err := r.next.UpdateByID(ctx, canonical, fields)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, bookCacheKey(canonical), bookListCacheKey)
	return updated, nil
}

func (r *cachedRepository) DeleteByID(ctx context.Context, id string) error {
	canonical, err := r.next.CanonicalID(id)
	if err != nil {
		return err
	}

	if err := r.next.DeleteByID(ctx, canonical); err != nil {
		return err
	}
	r.invalidate(ctx, bookCacheKey(canonical), bookListCacheKey)
	return nil
}

func (r *cachedRepository) CanonicalID(id string) (string, error) {
	return r.next.CanonicalID(id)
}

func (r *cachedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

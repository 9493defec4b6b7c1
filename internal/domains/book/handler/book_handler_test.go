package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/handler"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
	"book-catalog/internal/domains/book/service"
)

const unknownID = "6f1c1d2e-8a7b-4c3d-9e0f-112233445566"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, repo repository.RepositoryInterface) *gin.Engine {
	t.Helper()
	r := gin.New()
	handler.NewHandler(service.NewService(repo)).RegisterRoutes(r.Group("/books"))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func dune() map[string]any {
	return map[string]any{"title": "Dune", "author": "Herbert", "publishedYear": 1965}
}

func TestCreateThenGetReturnsSameFields(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())

	cases := []map[string]any{
		dune(),
		{"title": "Neuromancer", "author": "Gibson", "publishedYear": 1984},
		{"title": "Kindred", "author": "Butler", "publishedYear": 1979},
	}
	for _, in := range cases {
		w := doJSON(t, r, http.MethodPost, "/books", in)
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[model.Book](t, w)
		require.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		w = doJSON(t, r, http.MethodGet, "/books/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[model.Book](t, w)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, in["title"], got.Title)
		assert.Equal(t, in["author"], got.Author)
		assert.Equal(t, in["publishedYear"], got.PublishedYear)
	}
}

func TestCreateMissingFieldIsRejected(t *testing.T) {
	for _, missing := range []string{"title", "author", "publishedYear"} {
		t.Run(missing, func(t *testing.T) {
			repo := repository.NewMemoryRepository()
			r := newRouter(t, repo)

			body := dune()
			delete(body, missing)
			w := doJSON(t, r, http.MethodPost, "/books", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, model.MsgCreateMissingFields, decode[model.MessageResponse](t, w).Message)

			books, err := repo.FindAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	}
}

func TestCreateRejectsEmptyAndMalformedBodies(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())

	w := doJSON(t, r, http.MethodPost, "/books", map[string]any{"title": "", "author": "A", "publishedYear": 2000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.MsgCreateMissingFields, decode[model.MessageResponse](t, w).Message)
}

func TestListCountMatchesData(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())

	w := doJSON(t, r, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"data":[]}`, w.Body.String())

	for i := 0; i < 3; i++ {
		doJSON(t, r, http.MethodPost, "/books", dune())
	}

	w = doJSON(t, r, http.MethodGet, "/books", nil)
	list := decode[model.ListBooksResponse](t, w)
	assert.Equal(t, 3, list.Count)
	assert.Len(t, list.Data, list.Count)
}

func TestGetUnknownAndMalformedID(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())

	w := doJSON(t, r, http.MethodGet, "/books/"+unknownID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.NotFoundMessage(unknownID), decode[model.MessageResponse](t, w).Message)

	w = doJSON(t, r, http.MethodGet, "/books/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBook(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())
	created := decode[model.Book](t, doJSON(t, r, http.MethodPost, "/books", dune()))

	w := doJSON(t, r, http.MethodPut, "/books/"+created.ID,
		map[string]any{"title": "Dune Messiah", "author": "Frank Herbert", "publishedYear": 1969})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.MsgUpdated, decode[model.MessageResponse](t, w).Message)

	got := decode[model.Book](t, doJSON(t, r, http.MethodGet, "/books/"+created.ID, nil))
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.Equal(t, 1969, got.PublishedYear)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestUpdateMissingFieldIsRejected(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())
	created := decode[model.Book](t, doJSON(t, r, http.MethodPost, "/books", dune()))

	w := doJSON(t, r, http.MethodPut, "/books/"+created.ID, map[string]any{"title": "Only title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.MsgUpdateMissingFields, decode[model.MessageResponse](t, w).Message)

	got := decode[model.Book](t, doJSON(t, r, http.MethodGet, "/books/"+created.ID, nil))
	assert.Equal(t, "Dune", got.Title)
}

func TestUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	repo := repository.NewMemoryRepository()
	r := newRouter(t, repo)
	doJSON(t, r, http.MethodPost, "/books", dune())

	before, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPut, "/books/"+unknownID, dune())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.NotFoundMessage(unknownID), decode[model.MessageResponse](t, w).Message)

	after, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteBook(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())
	created := decode[model.Book](t, doJSON(t, r, http.MethodPost, "/books", dune()))

	w := doJSON(t, r, http.MethodDelete, "/books/"+unknownID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.MsgDeleted, decode[model.MessageResponse](t, w).Message)

	w = doJSON(t, r, http.MethodGet, "/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuneScenario(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())
	doJSON(t, r, http.MethodPost, "/books", map[string]any{"title": "Foundation", "author": "Asimov", "publishedYear": 1951})

	w := doJSON(t, r, http.MethodPost, "/books", dune())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Book](t, w)
	require.NotEmpty(t, created.ID)

	list := decode[model.ListBooksResponse](t, doJSON(t, r, http.MethodGet, "/books", nil))
	require.GreaterOrEqual(t, list.Count, 1)
	var ids []string
	for _, b := range list.Data {
		ids = append(ids, b.ID)
	}
	assert.Contains(t, ids, created.ID)

	w = doJSON(t, r, http.MethodDelete, "/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	after := decode[model.ListBooksResponse](t, doJSON(t, r, http.MethodGet, "/books", nil))
	assert.Equal(t, list.Count-1, after.Count)
}

// failingRepo fails every store call with a storage error.
type failingRepo struct {
	repository.RepositoryInterface
}

func storeDown(op string) error {
	return model.WrapStorage(op, errors.New("connection refused"))
}

func (failingRepo) Create(context.Context, *model.Book) (*model.Book, error) {
	return nil, storeDown("create book")
}

func (failingRepo) FindAll(context.Context) ([]model.Book, error) {
	return nil, storeDown("list books")
}

func (failingRepo) FindByID(context.Context, string) (*model.Book, error) {
	return nil, storeDown("get book by id")
}

func (failingRepo) UpdateByID(context.Context, string, model.BookFields) (*model.Book, error) {
	return nil, storeDown("update book")
}

func (failingRepo) DeleteByID(context.Context, string) error {
	return storeDown("delete book")
}

func TestStoreErrorsBecome500WithRawMessage(t *testing.T) {
	r := newRouter(t, failingRepo{})

	tests := []struct {
		method string
		path   string
		body   any
		op     string
	}{
		{http.MethodPost, "/books", dune(), "create book"},
		{http.MethodGet, "/books", nil, "list books"},
		{http.MethodGet, "/books/" + unknownID, nil, "get book by id"},
		{http.MethodPut, "/books/" + unknownID, dune(), "update book"},
		{http.MethodDelete, "/books/" + unknownID, nil, "delete book"},
		{http.MethodGet, "/books/export", nil, "list books"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)

			msg := decode[model.MessageResponse](t, w).Message
			assert.Contains(t, msg, tt.op)
			assert.Contains(t, msg, "connection refused")
		})
	}
}

func TestExportBooks(t *testing.T) {
	r := newRouter(t, repository.NewMemoryRepository())
	doJSON(t, r, http.MethodPost, "/books", dune())

	w := doJSON(t, r, http.MethodGet, "/books/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Books", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Dune", title)
}

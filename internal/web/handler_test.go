package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/domains/book/handler"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/repository"
	"book-catalog/internal/domains/book/service"
	"book-catalog/pkg/client"
)

type fixture struct {
	pages *gin.Engine
	api   client.BookClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	apiRouter := gin.New()
	handler.NewHandler(service.NewService(repository.NewMemoryRepository())).
		RegisterRoutes(apiRouter.Group("/books"))
	apiServer := httptest.NewServer(apiRouter)
	t.Cleanup(apiServer.Close)

	api := client.New(apiServer.URL)
	return &fixture{pages: NewRouter(NewHandler(api)), api: api}
}

func (f *fixture) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.pages.ServeHTTP(w, req)
	return w
}

func (f *fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.pages.ServeHTTP(w, req)
	return w
}

func flashFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", flashCookie)
	return nil
}

func flashText(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	msg, err := url.QueryUnescape(flashFrom(t, w).Value)
	require.NoError(t, err)
	return msg
}

func (f *fixture) seed(t *testing.T) *model.Book {
	t.Helper()
	b, err := f.api.CreateBook(context.Background(), model.BookFields{Title: "Dune", Author: "Herbert", PublishedYear: 1965})
	require.NoError(t, err)
	return b
}

func duneForm() url.Values {
	return url.Values{"title": {"Dune"}, "author": {"Herbert"}, "publishedYear": {"1965"}}
}

func TestListPage_TableAndCardViews(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	w := f.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<table>")
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "/books/details/"+b.ID)

	w = f.get("/?view=card")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="card"`)
	assert.NotContains(t, w.Body.String(), "<table>")
}

func TestCreateBook_RedirectsWithFlash(t *testing.T) {
	f := newFixture(t)

	w := f.get("/books/create")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/books/create"`)

	w = f.post("/books/create", duneForm())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = f.get("/", flashFrom(t, w))
	assert.Contains(t, w.Body.String(), FlashCreated)
	assert.Contains(t, w.Body.String(), "Herbert")

	list, err := f.api.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
}

func TestCreateBook_FailureShowsGenericError(t *testing.T) {
	f := newFixture(t)

	form := duneForm()
	form.Del("title")
	w := f.post("/books/create", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `role="alert">`+ErrorNotice+`<`)
	assert.Contains(t, w.Body.String(), `value="Herbert"`)
	assert.NotContains(t, w.Body.String(), model.MsgCreateMissingFields)

	list, err := f.api.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
}

func TestEditBook(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	w := f.get("/books/edit/" + b.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Dune"`)
	assert.Contains(t, w.Body.String(), `value="1965"`)

	w = f.post("/books/edit/"+b.ID, url.Values{"title": {"Dune Messiah"}, "author": {"Herbert"}, "publishedYear": {"1969"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, FlashEdited, flashText(t, w))

	got, err := f.api.GetBook(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 1969, got.PublishedYear)
}

func TestEditPage_UnknownBook(t *testing.T) {
	f := newFixture(t)

	w := f.get("/books/edit/6f1c1d2e-8a7b-4c3d-9e0f-112233445566")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), ErrorNotice)
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	w := f.get("/books/delete/" + b.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Yes, Delete it")

	w = f.post("/books/delete/"+b.ID, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, FlashDeleted, flashText(t, w))

	list, err := f.api.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)

	w = f.post("/books/delete/"+b.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), ErrorNotice)
}

func TestDetailsPage(t *testing.T) {
	f := newFixture(t)
	b := f.seed(t)

	w := f.get("/books/details/" + b.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), b.ID)
	assert.Contains(t, w.Body.String(), "1965")
}

func TestListPage_APIDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pages := NewRouter(NewHandler(client.New("http://127.0.0.1:1")))

	w := httptest.NewRecorder()
	pages.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), ErrorNotice)
}

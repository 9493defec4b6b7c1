// Package web serves the server-rendered client pages of the book catalog.
// Every page performs at most one API call through pkg/client.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/pkg/client"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	flashCookie = "flash"

	FlashCreated = "Book Created Successfully"
	FlashEdited  = "Book Edited Successfully"
	FlashDeleted = "Book Deleted Successfully"

	// ErrorNotice is the only failure detail a page ever shows.
	ErrorNotice = "Error"

	viewTable = "table"
	viewCard  = "card"
)

// pageData is the model shared by every template.
type pageData struct {
	Title  string
	Flash  string
	Error  string
	View   string
	Books  []model.Book
	Book   *model.Book
	Form   model.BookFields
	Action string
}

// Handler renders the pages.
type Handler struct {
	api client.BookClient
}

func NewHandler(api client.BookClient) *Handler {
	return &Handler{api: api}
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

// NewRouter builds a gin engine serving the pages.
func NewRouter(h *Handler, middlewares ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middlewares...)
	router.SetHTMLTemplate(Templates())
	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", h.ListPage)
	router.GET("/books/create", h.CreatePage)
	router.POST("/books/create", h.CreateBook)
	router.GET("/books/edit/:id", h.EditPage)
	router.POST("/books/edit/:id", h.EditBook)
	router.GET("/books/delete/:id", h.DeletePage)
	router.POST("/books/delete/:id", h.DeleteBook)
	router.GET("/books/details/:id", h.DetailsPage)
}

// ListPage - GET /?view=table|card
func (h *Handler) ListPage(c *gin.Context) {
	data := pageData{
		Title: "Books List",
		Flash: popFlash(c),
		View:  viewTable,
	}
	if c.Query("view") == viewCard {
		data.View = viewCard
	}

	list, err := h.api.ListBooks(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusBadGateway, "list.html", data, err)
		return
	}
	data.Books = list.Data

	c.HTML(http.StatusOK, "list.html", data)
}

// CreatePage - GET /books/create
func (h *Handler) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", pageData{
		Title:  "Create Book",
		Action: "/books/create",
	})
}

// CreateBook - POST /books/create
func (h *Handler) CreateBook(c *gin.Context) {
	fields := formFields(c)

	if _, err := h.api.CreateBook(c.Request.Context(), fields); err != nil {
		h.fail(c, http.StatusUnprocessableEntity, "form.html", pageData{
			Title:  "Create Book",
			Action: "/books/create",
			Form:   fields,
		}, err)
		return
	}

	redirectWithFlash(c, FlashCreated)
}

// EditPage - GET /books/edit/:id
func (h *Handler) EditPage(c *gin.Context) {
	id := c.Param("id")
	data := pageData{
		Title:  "Edit Book",
		Action: "/books/edit/" + id,
	}

	book, err := h.api.GetBook(c.Request.Context(), id)
	if err != nil {
		h.fail(c, http.StatusBadGateway, "form.html", data, err)
		return
	}
	data.Book = book
	data.Form = model.BookFields{Title: book.Title, Author: book.Author, PublishedYear: book.PublishedYear}

	c.HTML(http.StatusOK, "form.html", data)
}

// EditBook - POST /books/edit/:id
func (h *Handler) EditBook(c *gin.Context) {
	id := c.Param("id")
	fields := formFields(c)

	if err := h.api.UpdateBook(c.Request.Context(), id, fields); err != nil {
		h.fail(c, http.StatusUnprocessableEntity, "form.html", pageData{
			Title:  "Edit Book",
			Action: "/books/edit/" + id,
			Form:   fields,
		}, err)
		return
	}

	redirectWithFlash(c, FlashEdited)
}

// DeletePage - GET /books/delete/:id
func (h *Handler) DeletePage(c *gin.Context) {
	id := c.Param("id")
	c.HTML(http.StatusOK, "delete.html", pageData{
		Title:  "Delete Book",
		Action: "/books/delete/" + id,
	})
}

// DeleteBook - POST /books/delete/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.api.DeleteBook(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusUnprocessableEntity, "delete.html", pageData{
			Title:  "Delete Book",
			Action: "/books/delete/" + id,
		}, err)
		return
	}

	redirectWithFlash(c, FlashDeleted)
}

// DetailsPage - GET /books/details/:id
func (h *Handler) DetailsPage(c *gin.Context) {
	data := pageData{Title: "Show Book"}

	book, err := h.api.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, http.StatusBadGateway, "details.html", data, err)
		return
	}
	data.Book = book

	c.HTML(http.StatusOK, "details.html", data)
}

// fail logs the API error and re-renders the page with the generic notice.
func (h *Handler) fail(c *gin.Context, status int, page string, data pageData, err error) {
	log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("book API call failed")
	data.Error = ErrorNotice
	c.HTML(status, page, data)
}

// formFields reads the posted form. A non-numeric year becomes 0, which the API rejects as missing.
func formFields(c *gin.Context) model.BookFields {
	year, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("publishedYear")))
	return model.BookFields{
		Title:         strings.TrimSpace(c.PostForm("title")),
		Author:        strings.TrimSpace(c.PostForm("author")),
		PublishedYear: year,
	}
}

func redirectWithFlash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

// popFlash returns the pending notification, if any, and clears it.
func popFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return msg
}

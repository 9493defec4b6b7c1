package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/book/service"
	"book-catalog/internal/shared/response"
)

// Handler - HTTP handler for the /books resource
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// RegisterRoutes mounts the CRUD routes on group (expected to be /books).
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.CreateBook)
	group.GET("", h.ListBooks)
	group.GET("/export", h.ExportBooks)
	group.GET("/:id", h.GetBook)
	group.PUT("/:id", h.UpdateBook)
	group.DELETE("/:id", h.DeleteBook)
}

// handleError maps a service error onto the status table. missingFieldsMsg is
// the 400 body used when the input failed validation.
func (h *Handler) handleError(c *gin.Context, err error, id, missingFieldsMsg string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		response.BadRequest(c, missingFieldsMsg)
	case errors.Is(err, model.ErrInvalidID):
		response.BadRequest(c, fmt.Sprintf("invalid book id %s", id))
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, model.NotFoundMessage(id))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("book store call failed")
		response.Message(c, model.ToHTTPStatus(err), err.Error())
	}
}

// CreateBook - POST /books
func (h *Handler) CreateBook(c *gin.Context) {
	var input model.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Debug().Err(err).Msg("invalid create book body")
		response.BadRequest(c, model.MsgCreateMissingFields)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err, "", model.MsgCreateMissingFields)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// ListBooks - GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "", "")
		return
	}

	response.Success(c, http.StatusOK, model.NewListBooksResponse(books))
}

// GetBook - GET /books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, id, "")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// UpdateBook - PUT /books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id := c.Param("id")

	var input model.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Debug().Err(err).Msg("invalid update book body")
		response.BadRequest(c, model.MsgUpdateMissingFields)
		return
	}

	if _, err := h.service.UpdateBook(c.Request.Context(), id, input); err != nil {
		h.handleError(c, err, id, model.MsgUpdateMissingFields)
		return
	}

	response.Message(c, http.StatusOK, model.MsgUpdated)
}

// DeleteBook - DELETE /books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		h.handleError(c, err, id, "")
		return
	}

	response.Message(c, http.StatusOK, model.MsgDeleted)
}

// ExportBooks - GET /books/export
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooksToExcel(c.Request.Context())
	if err != nil {
		h.handleError(c, err, "", "")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to write export workbook")
	}
}

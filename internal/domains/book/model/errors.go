package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation: a required field is missing on create/update.
	ErrValidation = errors.New("validation failed")
	// ErrBookNotFound: the referenced id has no record.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidID: the id is not in the store's id format.
	ErrInvalidID = errors.New("invalid book id")
	// ErrStorage wraps every driver/connectivity failure.
	ErrStorage = errors.New("storage error")
)

const (
	MsgCreateMissingFields = "Send all the required fields: title, author, publishedYear"
	MsgUpdateMissingFields = "Send all the required fields"
	MsgUpdated             = "Details are updated successfully"
	MsgDeleted             = "Book Deleted Successfully"
)

// NotFoundMessage is the 404 body text for id.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("book with id %s not found", id)
}

// WrapStorage marks a driver error as a storage failure while keeping the driver text.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// ToHTTPStatus maps a service/store error to the response status.
func ToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

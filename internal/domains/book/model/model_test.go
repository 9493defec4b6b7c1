package model

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   BookInput
		wantErr string
	}{
		{"complete", BookInput{strPtr("Dune"), strPtr("Herbert"), intPtr(1965)}, ""},
		{"missing title", BookInput{nil, strPtr("Herbert"), intPtr(1965)}, "title"},
		{"empty author", BookInput{strPtr("Dune"), strPtr(""), intPtr(1965)}, "author"},
		{"missing year", BookInput{strPtr("Dune"), strPtr("Herbert"), nil}, "publishedYear"},
		{"zero year", BookInput{strPtr("Dune"), strPtr("Herbert"), intPtr(0)}, "publishedYear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBookInputFields(t *testing.T) {
	in := BookInput{strPtr("Dune"), strPtr("Herbert"), intPtr(1965)}

	b := in.Fields().ToEntity()
	assert.Empty(t, b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Herbert", b.Author)
	assert.Equal(t, 1965, b.PublishedYear)
}

func TestNewListBooksResponse(t *testing.T) {
	empty := NewListBooksResponse(nil)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Data)

	list := NewListBooksResponse([]Book{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, len(list.Data), list.Count)
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, ToHTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(fmt.Errorf("%w: title", ErrValidation)))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(ErrInvalidID))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(fmt.Errorf("lookup: %w", ErrBookNotFound)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(WrapStorage("insert book", errors.New("timeout"))))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(errors.New("unexpected")))
}

func TestWrapStorageKeepsDriverError(t *testing.T) {
	driverErr := errors.New("connection reset")
	err := WrapStorage("insert book", driverErr)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, WrapStorage("noop", nil))
}

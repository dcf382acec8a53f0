package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("open days.csv: no such file or directory")
	err := NewLoadError("cannot read dataset", cause)

	assert.Equal(t, "[LOAD] cannot read dataset: open days.csv: no such file or directory", err.Error())
	assert.True(t, errors.Is(err, cause))

	plain := NewInvalidRangeError("start is after end")
	assert.Equal(t, "[INVALID_RANGE] start is after end", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := (&AppError{Type: ErrTypeParsing, Message: "bad cell"}).
		WithContext("row", 4).
		WithContext("column", "temp")

	assert.Equal(t, 4, err.Context["row"])
	assert.Equal(t, "temp", err.Context["column"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"direct match", NewInvalidRangeError("x"), ErrTypeInvalidRange, true},
		{"wrapped match", fmt.Errorf("service: %w", NewLoadError("x", nil)), ErrTypeLoad, true},
		{"other type", NewConfigError("x", nil), ErrTypeLoad, false},
		{"plain error", errors.New("x"), ErrTypeLoad, false},
		{"nil", nil, ErrTypeLoad, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestAPIErrorConstructors(t *testing.T) {
	multi := NewValidationErrors([]ValidationError{{Field: "start"}, {Field: "end"}})
	assert.Equal(t, http.StatusBadRequest, multi.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", multi.ErrorCode)
	assert.Len(t, multi.Details.(ValidationErrors).Errors, 2)

	bad := InvalidRequestWithError(fmt.Errorf("unexpected type"))
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", bad.ErrorCode)
	assert.Equal(t, "unexpected type", bad.Details)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError(`summary "hourly"`)
	assert.Equal(t, ErrTypeNotFound, err.Type)
	assert.Equal(t, `[NOT_FOUND] summary "hourly" not found`, err.Error())
}

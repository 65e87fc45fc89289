package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err          error
		expectedCode int
		expectedTag  string
	}{
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrMessageNotFound, http.StatusNotFound, "MESSAGE_NOT_FOUND"},
		{ErrUserExists, http.StatusConflict, "USERNAME_TAKEN"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
		{ErrEmptyBody, http.StatusBadRequest, "EMPTY_BODY"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedTag, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedCode, httpErr.StatusCode)
			assert.Equal(t, tt.expectedTag, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("load message: %w", ErrMessageNotFound)
	httpErr := MapErrorToHTTP(wrapped)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestMapErrorToHTTP_InternalHidesDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dial tcp: connection refused"))
	assert.Equal(t, "internal server error", httpErr.Message)
	assert.NotContains(t, httpErr.ToErrorResponse().Error, "dial tcp")
}

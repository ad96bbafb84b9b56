package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_HTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrNotFound:           http.StatusNotFound,
		ErrBadRequest:         http.StatusBadRequest,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrInvalidToken:       http.StatusUnauthorized,
		ErrTokenExpired:       http.StatusUnauthorized,
		ErrForbidden:          http.StatusForbidden,
		ErrNotApproved:        http.StatusForbidden,
		ErrNotAssigned:        http.StatusForbidden,
		ErrConflict:           http.StatusConflict,
		ErrExternalService:    http.StatusBadGateway,
		ErrInternal:           http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, code.HTTPStatus(), "code %d", code)
	}
}

func TestWrap_KeepsSentinelIdentity(t *testing.T) {
	sentinel := Conflict("already exists")
	cause := errors.New("pq: duplicate key")

	err := fmt.Errorf("failed to create: %w", sentinel.Wrap(cause))

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrConflict, appErr.Code)
	assert.Equal(t, "already exists", appErr.Message)
}

func TestNotApproved_CarriesState(t *testing.T) {
	err := NotApproved("REJECTED")

	assert.Equal(t, ErrNotApproved, err.Code)
	assert.Equal(t, "REJECTED", err.Details["status"])
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, CodeOf(fmt.Errorf("lookup: %w", NotFound("doctor", nil))))
	assert.Equal(t, ErrInternal, CodeOf(errors.New("boom")))
}

package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pms/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidPageSizeParam",
			failure: failure.InvalidPageSizeParam,
			code:    http.StatusBadRequest,
			message: "invalid page_size parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Message)
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("custom bad request"),
			code:    http.StatusBadRequest,
			message: "custom bad request",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "not found",
			err:     failure.NotFound("night audit run"),
			code:    http.StatusNotFound,
			message: "night audit run",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("night audit already run for 2024-03-10"),
			code:    http.StatusConflict,
			message: "night audit already run for 2024-03-10",
		},
		{
			name:    "new",
			err:     failure.New(http.StatusTooManyRequests, "slow down"),
			code:    http.StatusTooManyRequests,
			message: "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestWithDetails(t *testing.T) {
	details := map[string]any{"audit_date": "2024-03-10"}
	detailed := failure.InvalidPageParam.WithDetails(details)

	assert.Equal(t, details, detailed.ErrorDetails())
	assert.Equal(t, http.StatusBadRequest, detailed.Code)
	assert.Equal(t, "invalid page parameter", detailed.Error())
	assert.Nil(t, failure.InvalidPageParam.ErrorDetails(), "shared failures must not be mutated")
}

func TestTransactionFailure(t *testing.T) {
	err := failure.TransactionFailure()

	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.Equal(t, "transaction aborted, check the current state before retrying", err.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.Conflict("test")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

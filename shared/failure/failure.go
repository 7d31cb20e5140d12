package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the transport layer can show to clients as is. Code is an HTTP
// status code.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var (
	InvalidPageParam     = New(http.StatusBadRequest, "invalid page parameter")
	InvalidPageSizeParam = New(http.StatusBadRequest, "invalid page_size parameter")
	ForbiddenError       = New(http.StatusForbidden, "You don't have the required permissions")
)

func New(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

func (e *Failure) Error() string {
	return e.Message
}

// WithDetails returns a copy of the failure carrying details for the client.
func (e *Failure) WithDetails(details map[string]any) *Failure {
	return &Failure{Code: e.Code, Message: e.Message, Details: details}
}

func (e *Failure) ErrorDetails() map[string]any {
	return e.Details
}

// BadRequest turns err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// NotFound reports a missing entity by name.
func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

// TransactionFailure reports an aborted write transaction. Nothing was persisted unless the
// failure happened during commit, so callers must re-read the state before retrying. The
// cause is never exposed, callers log it.
func TransactionFailure() error {
	return New(http.StatusServiceUnavailable, "transaction aborted, check the current state before retrying")
}

// GetCode returns the status code of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

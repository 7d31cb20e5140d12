package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"pms/shared/constant"
	"pms/shared/failure"
	"pms/shared/logger"
)

const internalErrorMessage = "internal server error"

// Detailer is implemented by errors that carry machine readable context for the client,
// such as the id of the run that already audited a date.
type Detailer interface {
	ErrorDetails() map[string]any
}

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error   *string        `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends the message of a failure with its status code. Errors that are not
// failures are reported as a generic internal error so driver messages never leak.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		logger.ErrorWithStack(err)

		msg := internalErrorMessage
		response(writer, http.StatusInternalServerError, Error{Error: &msg})

		return
	}

	body := Error{Error: new(string)}
	*body.Error = err.Error()

	var detailer Detailer
	if errors.As(err, &detailer) {
		body.Details = detailer.ErrorDetails()
	}

	response(writer, fail.Code, body)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		logger.ErrorWithStack(err)
	}
}

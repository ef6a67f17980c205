package response

import (
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"net/http"
)

// Data wraps a single resource or list under "data".
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithBody writes payload as the top-level document, for envelopes that carry their own metadata.
func WithBody(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, payload)
}

// WithBytes writes a rendered document. A non-empty fileName is offered inline.
func WithBytes(writer http.ResponseWriter, code int, contentType, fileName string, body []byte) {
	header := writer.Header()
	header.Set(constant.RequestHeaderContentType, contentType)

	if fileName != "" {
		header.Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("inline; filename=%q", fileName))
	}

	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithError maps err to its status. Causes of server-side failures are logged and replaced by a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
	}

	message := failure.PublicMessage(err)
	write(writer, code, Error{Error: &message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formplay/internal/session"
	"github.com/goliatone/go-formplay/pkg/form"
)

// StatusError carries the HTTP status an error should be reported with.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns Code, defaulting to 500.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var statusErr StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.StatusCode()
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrCapacity):
		return http.StatusServiceUnavailable
	case errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrUnknownEvent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", zapRequest(c, err)...)
		message = http.StatusText(code)
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: message})
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// domainStatus maps application error codes to a status and public code.
var domainStatus = map[string]struct {
	status int
	code   string
}{
	apperrors.CodeInvalidInput: {http.StatusBadRequest, "invalid_request"},
	apperrors.CodeRenderError:  {http.StatusInternalServerError, "render_failed"},
	apperrors.CodeCacheError:   {http.StatusServiceUnavailable, "cache_unavailable"},
}

// fromDomainError translates a service error. Errors without a known code
// become a 500 carrying fallbackCode.
func fromDomainError(err error, fallbackCode string) *HTTPError {
	if mapped, ok := domainStatus[apperrors.CodeOf(err)]; ok {
		return NewHTTPError(mapped.status, mapped.code, errMessage(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if apperrors.CodeOf(err) != "" {
		return fromDomainError(err, "internal_error")
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

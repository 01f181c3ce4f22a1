package voiceforge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Error represents a VoiceForge API error.
//
// The backend reports failures as a non-2xx status with a JSON body of the
// form {"detail": "..."}. When the body is absent or unparseable, Detail
// carries a generic fallback message.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int `json:"-"`

	// Detail is the server-provided error message.
	Detail string `json:"detail"`

	// RequestID is the X-Request-Id sent with the failing request.
	RequestID string `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("voiceforge: %s (http_status=%d, request_id=%s)", e.Detail, e.HTTPStatus, e.RequestID)
}

// IsNotFound returns true if the requested resource does not exist.
func (e *Error) IsNotFound() bool {
	return e.HTTPStatus == http.StatusNotFound
}

// IsInvalidRequest returns true if the server rejected the request parameters.
func (e *Error) IsInvalidRequest() bool {
	return e.HTTPStatus == http.StatusBadRequest || e.HTTPStatus == http.StatusUnprocessableEntity
}

// IsUnavailable returns true if the required backend service is not running.
func (e *Error) IsUnavailable() bool {
	return e.HTTPStatus == http.StatusServiceUnavailable
}

// IsServerError returns true if this is a server-side error.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := voiceforge.AsError(err); ok && e.IsNotFound() {
//	    // model was deleted elsewhere
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTimeout reports whether err was caused by an elapsed operation deadline.
// Timeout-triggered abort is the only cancellation mechanism the client has;
// there is no mid-request user cancel.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

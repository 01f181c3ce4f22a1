package studio

import "errors"

// ErrBusy is returned when a clone or generate call is attempted while
// another job is active. The pipeline keeps no internal queue; the caller
// decides whether to wait or drop the request.
var ErrBusy = errors.New("studio: a generation is already in progress")

// ErrPodcastBusy is returned when a podcast render is attempted while one
// is already in flight.
var ErrPodcastBusy = errors.New("studio: a podcast generation is already in progress")

// ValidationError reports a precondition failure caught before any network
// call is made.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "studio: " + e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

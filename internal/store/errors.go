package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a record identifier
// that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError signals client-supplied input that cannot be accepted:
// missing required fields, bad enum values, unparseable dates.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

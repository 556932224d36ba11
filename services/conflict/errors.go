package conflict

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInstant = errors.New("malformed timestamp")
	ErrInvalidInterval  = errors.New("interval start must precede end")
)

// ValidationError reports which booking and field made the input unusable.
type ValidationError struct {
	Code      string
	BookingID string
	Field     string
	Err       error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: booking %q field %s: %v", e.Code, e.BookingID, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: booking %q: %v", e.Code, e.BookingID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(bookingID, field string, err error) error {
	return &ValidationError{
		Code:      "validationError",
		BookingID: bookingID,
		Field:     field,
		Err:       err,
	}
}

// IsValidation reports whether err came from rejecting resolver input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

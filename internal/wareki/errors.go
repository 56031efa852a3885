package wareki

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a date was rejected.
type ErrorKind string

const (
	// FormatMismatch means the input matched none of the accepted layouts.
	FormatMismatch ErrorKind = "FORMAT_MISMATCH"
	// CalendarInvalid means the input was well formed but names a day that
	// does not exist, such as month 13 or February 30.
	CalendarInvalid ErrorKind = "CALENDAR_INVALID"
	// OutOfRange means the date lies before the first era in the table.
	OutOfRange ErrorKind = "OUT_OF_RANGE"
)

// Sentinels for errors.Is. A *DateError matches the sentinel of its Kind.
var (
	ErrFormatMismatch  = errors.New("date format not recognised")
	ErrCalendarInvalid = errors.New("not a valid calendar date")
	ErrOutOfRange      = errors.New("date outside the era table")
)

// DateError reports a rejected date.
type DateError struct {
	Kind  ErrorKind
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %q", e.sentinel().Error(), e.Input)
}

// Is lets errors.Is match a DateError against the sentinel of its kind.
func (e *DateError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *DateError) sentinel() error {
	switch e.Kind {
	case CalendarInvalid:
		return ErrCalendarInvalid
	case OutOfRange:
		return ErrOutOfRange
	default:
		return ErrFormatMismatch
	}
}

// Reason returns the kind of a rejection error, or "" when err is not a
// *DateError.
func Reason(err error) ErrorKind {
	var de *DateError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

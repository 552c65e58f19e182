package calendar

import (
	"errors"
	"fmt"
)

// OutOfRangeCode is the numeric error code carried by RangeError. It
// matches the code the upstream table format documents for requests
// outside the supported year span.
const OutOfRangeCode = 100

// RangeError reports a requested year outside the table's supported
// range. It is returned as a value, never panicked.
type RangeError struct {
	Year int
	Min  int
	Max  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("year %d out of range [%d, %d]", e.Year, e.Min, e.Max)
}

// Code returns the stable numeric code for this error kind.
func (e *RangeError) Code() int { return OutOfRangeCode }

// IsOutOfRange checks if an error is a year-out-of-range error.
func IsOutOfRange(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

package model

import "errors"

// ErrEmptyJoin is returned when the consumption and price series share no
// hours at all. Usually the upload covers a period the price store does
// not, or a range filter removed the overlap.
var ErrEmptyJoin = errors.New("consumption and price series share no hours")

// IngestionError covers anything that makes a consumption table unusable:
// a required column is missing, the table has no data rows, or no row
// survives type coercion. The caller is expected to discard the file.
type IngestionError struct {
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return "read consumption: " + e.Reason + ": " + e.Err.Error()
	}
	return "read consumption: " + e.Reason
}

func (e *IngestionError) Unwrap() error { return e.Err }

package frame

import "errors"

// Errors returned by the frame package.
var (
	ErrColumnNotFound     = errors.New("column not found")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrRaggedColumns      = errors.New("columns have different lengths")
	ErrKindMismatch       = errors.New("value kind does not match column kind")
	ErrNotNumeric         = errors.New("column is not numeric")
	ErrNoNumericColumns   = errors.New("no numeric columns to describe")
	ErrUnknownAggregation = errors.New("unknown aggregation function")
	ErrIndexIsColumns     = errors.New("index and columns must be different fields")
	ErrTimeParse          = errors.New("cannot parse value as a date")
)

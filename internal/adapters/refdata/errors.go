package refdata

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLoadTable  = errors.New("load reference table failed")
	ErrInvalidRow = errors.New("invalid reference row")
	ErrEmptyTable = errors.New("reference table is empty")
)

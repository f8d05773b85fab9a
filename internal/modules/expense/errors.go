package expense

import "errors"

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNegativeAmount  = errors.New("amount must be zero or positive")
	ErrInvalidDate     = errors.New("date must be RFC 3339 or YYYY-MM-DD")
	ErrInvalidFile     = errors.New("file is not a readable spreadsheet")
	ErrNoRows          = errors.New("spreadsheet has no data rows")
)

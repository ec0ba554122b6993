package entity

import "errors"

// Domain errors shared between the API handlers and the repositories that
// back them.
var (
	ErrNotFound    = errors.New("not found")
	ErrNoCopies    = errors.New("no copies available")
	ErrDuplicate   = errors.New("already exists")
	ErrActiveLoans = errors.New("active borrow records exist")
)

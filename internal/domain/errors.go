package domain

import "errors"

var (
	// Transaction errors
	ErrZeroAmount          = errors.New("transaction amount must be non-zero")
	ErrInvalidDate         = errors.New("transaction date is not a valid calendar date")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Candidate errors
	ErrInvalidCandidate = errors.New("invalid candidate pair")
	ErrSameAccount      = errors.New("both transactions belong to the same account")

	// Decision errors
	ErrAlreadyResolved  = errors.New("transaction already carries a transfer pair")
	ErrInvalidReference = errors.New("pair identifier collides with an unrelated pairing")
	ErrNotPaired        = errors.New("transaction is not paired")
	ErrInvalidAction    = errors.New("invalid transfer pair action")
)

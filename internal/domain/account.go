package domain

import "time"

// Account is a bank account referenced by transactions. Reconciliation never
// mutates accounts; they exist so suggestions can show where money moved.
type Account struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	Name        string
	Institution string
	Type        string
}

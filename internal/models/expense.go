package models

import "github.com/shopspring/decimal"

// Expense is one payment made by a member on behalf of other members.
// The amount is split evenly across SplitMembers; the payer may or may not
// be one of them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is what the money was spent on (e.g., "Dinner").
	Description string

	// PaidBy is the member who paid.
	PaidBy Member

	// Amount is the total paid.
	Amount decimal.Decimal

	// SplitMembers are the members sharing the expense, in order.
	SplitMembers []Member

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

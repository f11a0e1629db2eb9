// Package calculator implements the debt-simplification engine: pairwise nets
// between two members, per-member net balances across groups, and the greedy
// reduction of those balances into a short list of suggested transfers.
//
// Every function in this package is pure. Inputs are read-only snapshots and
// every result is freshly allocated.
package calculator

import "github.com/shopspring/decimal"

// Member identifies a participant by opaque id and display name.
type Member struct {
	ID   string
	Name string
}

// Expense is one payment made by PaidBy on behalf of SplitMembers.
// The amount is split evenly; the payer may or may not be a split member.
type Expense struct {
	ID           string
	PaidBy       Member
	Amount       decimal.Decimal
	SplitMembers []Member
	CreatedAt    int64
}

// Settlement is money that has already changed hands between two members.
type Settlement struct {
	PayerID    string
	ReceiverID string
	Amount     decimal.Decimal
	CreatedAt  int64
}

// Group is the minimal view of a group needed for balance calculations.
type Group struct {
	Members  []Member
	Expenses []*Expense
}

// PairwiseNet holds what each side of a pair owes the other.
type PairwiseNet struct {
	SubjectCanPay      decimal.Decimal // counterparty owes subject
	CounterpartyCanPay decimal.Decimal // subject owes counterparty
}

// Balance is one member's signed net position.
// Positive = owed money, Negative = owes money.
type Balance struct {
	Member Member
	Amount decimal.Decimal
}

// Transfer is one suggested payment.
type Transfer struct {
	From   Member
	To     Member
	Amount decimal.Decimal
}

package api

import "github.com/shopspring/decimal"

// User is a user's profile. Email is empty when the viewer may not see it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name"`
	Username  string `json:"username,omitempty"`
	UPI       string `json:"upi,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Member is a user as referenced from a group, an expense or a transfer.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"groupId"`
	Description  string          `json:"description"`
	PaidBy       Member          `json:"paidBy"`
	Amount       decimal.Decimal `json:"amount"`
	SplitMembers []Member        `json:"splitMembers"`

	// Shares is what each split member owes, in split order, rounded to two places.
	Shares    []MemberShare `json:"shares"`
	CreatedAt int64         `json:"createdAt"`
}

type MemberShare struct {
	Member Member          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
}

type Group struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatorID string     `json:"creatorId"`
	Members   []Member   `json:"members"`
	Expenses  []*Expense `json:"expenses,omitempty"`
	CreatedAt int64      `json:"createdAt"`
}

type Settlement struct {
	ID         string          `json:"id"`
	PayerID    string          `json:"payerId"`
	ReceiverID string          `json:"receiverId"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  int64           `json:"createdAt"`
}

// Activity kinds.
const (
	ActivityExpense    = "expense"
	ActivitySettlement = "settlement"
)

// Activity is one entry of the activity feed: an expense in a group, or a
// settlement the caller took part in. Exactly one of Expense and Settlement is set.
type Activity struct {
	Kind       string      `json:"kind"`
	GroupID    string      `json:"groupId,omitempty"`
	GroupName  string      `json:"groupName,omitempty"`
	Expense    *Expense    `json:"expense,omitempty"`
	Settlement *Settlement `json:"settlement,omitempty"`
	CreatedAt  int64       `json:"createdAt"`
}

// MemberBalance is a member's net position, rounded to two places.
// Positive = owed money, Negative = owes money.
type MemberBalance struct {
	Member Member          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
}

// Transfer is one suggested payment, rounded to two places.
type Transfer struct {
	From   Member          `json:"from"`
	To     Member          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// FriendBalance is the position between the caller and one friend.
type FriendBalance struct {
	Friend Member `json:"friend"`

	// UserCanPay is what the friend owes the caller.
	UserCanPay decimal.Decimal `json:"userCanPay"`

	// FriendCanPay is what the caller owes the friend.
	FriendCanPay decimal.Decimal `json:"friendCanPay"`

	// Net is UserCanPay - FriendCanPay. Positive = friend owes the caller.
	Net decimal.Decimal `json:"net"`
}

package api

import "github.com/shopspring/decimal"

// AuthService

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// UserService

// GetProfileRequest looks a user up by ID or username. Both empty means the caller.
type GetProfileRequest struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
}

type GetProfileResponse struct {
	User *User `json:"user"`
}

// UpdateProfileRequest replaces the caller's editable profile fields.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	UPI      string `json:"upi,omitempty"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Member `json:"friends"`
}

// SearchUsersRequest finds people to add to a group. Query matches names and
// usernames, or a full email address. Limit defaults to 20, at most 50.
type SearchUsersRequest struct {
	Query string `json:"query,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// SearchUsersResponse never includes the caller, nor email addresses.
type SearchUsersResponse struct {
	Users []*User `json:"users"`
}

// GroupService

// CreateGroupRequest creates a group. The caller is always a member.
type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddExpenseRequest struct {
	GroupID        string          `json:"groupId"`
	Description    string          `json:"description"`
	PaidBy         string          `json:"paidBy"`
	SplitMemberIDs []string        `json:"splitMemberIds"`
	Amount         decimal.Decimal `json:"amount"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// ListActivityRequest limits the feed to GroupIDs; empty means all the
// caller's groups. Limit defaults to 50, at most 200.
type ListActivityRequest struct {
	GroupIDs []string `json:"groupIds,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// ListActivityResponse is newest first.
type ListActivityResponse struct {
	Items []Activity `json:"items"`
}

// SettlementService

type RecordSettlementRequest struct {
	PayerID    string          `json:"payerId"`
	ReceiverID string          `json:"receiverId"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

// ListSettlementsRequest filters by payer and/or receiver.
// With neither set it lists every settlement involving the caller.
type ListSettlementsRequest struct {
	PayerID    string `json:"payerId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

// SettleUpRequest records the settlement that zeroes the caller's ledger with a friend.
type SettleUpRequest struct {
	FriendID string `json:"friendId"`
	Note     string `json:"note,omitempty"`
}

// SettleUpResponse has a nil Settlement when the pair was already even.
type SettleUpResponse struct {
	Settlement *Settlement `json:"settlement,omitempty"`
}

// BalanceService

// SimplifyDebtsRequest limits simplification to GroupIDs; empty means all the caller's groups.
type SimplifyDebtsRequest struct {
	GroupIDs []string `json:"groupIds,omitempty"`
}

type SimplifyDebtsResponse struct {
	Balances  []MemberBalance `json:"balances"`
	Transfers []Transfer      `json:"transfers"`
}

type GetFriendBalancesRequest struct{}

type GetFriendBalancesResponse struct {
	Friends []FriendBalance `json:"friends"`
}

type GetPaymentLinkRequest struct {
	FriendID string `json:"friendId"`
}

type GetPaymentLinkResponse struct {
	Link   string          `json:"link"`
	Amount decimal.Decimal `json:"amount"`
}

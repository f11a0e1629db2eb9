package calculator

import "github.com/shopspring/decimal"

// UniqueFriends returns every member of the given groups except userID,
// deduplicated by id. Friends keep the position of their first appearance
// while the last record seen supplies the name.
func UniqueFriends(groups []Group, userID string) []Member {
	index := make(map[string]int)
	var friends []Member
	for _, g := range groups {
		for _, m := range g.Members {
			if m.ID == "" || m.ID == userID {
				continue
			}
			if i, exists := index[m.ID]; exists {
				friends[i] = m
				continue
			}
			index[m.ID] = len(friends)
			friends = append(friends, m)
		}
	}
	return friends
}

// FriendLedger is the running position between the current user and one friend.
type FriendLedger struct {
	Friend Member

	// UserCanPay is what the friend still owes the user.
	UserCanPay decimal.Decimal

	// FriendCanPay is what the user still owes the friend.
	FriendCanPay decimal.Decimal

	// Net is UserCanPay - FriendCanPay. Positive = friend owes user.
	Net decimal.Decimal
}

// FriendBalance computes the ledger between userID and friend from the
// expenses they share, less every settlement already paid between the two.
func FriendBalance(userID string, friend Member, expenses []*Expense, settlements []Settlement) FriendLedger {
	net := ComputePairwiseNet(userID, expenses, friend.ID)

	paidByUser := decimal.Zero
	paidByFriend := decimal.Zero
	for _, s := range settlements {
		if !s.Amount.IsPositive() {
			continue
		}
		switch {
		case s.PayerID == userID && s.ReceiverID == friend.ID:
			paidByUser = paidByUser.Add(s.Amount)
		case s.PayerID == friend.ID && s.ReceiverID == userID:
			paidByFriend = paidByFriend.Add(s.Amount)
		}
	}

	userCanPay := net.SubjectCanPay.Sub(paidByFriend)
	friendCanPay := net.CounterpartyCanPay.Sub(paidByUser)

	return FriendLedger{
		Friend:       friend,
		UserCanPay:   userCanPay,
		FriendCanPay: friendCanPay,
		Net:          userCanPay.Sub(friendCanPay),
	}
}

// SettleUpSettlement returns the settlement that brings the ledger back to
// zero, rounded to two decimal places. It reports false when the rounded net
// is zero.
func SettleUpSettlement(userID string, l FriendLedger) (Settlement, bool) {
	amount := l.Net.Abs().Round(2)
	if !amount.IsPositive() {
		return Settlement{}, false
	}
	if l.Net.IsPositive() {
		return Settlement{PayerID: l.Friend.ID, ReceiverID: userID, Amount: amount}, true
	}
	return Settlement{PayerID: userID, ReceiverID: l.Friend.ID, Amount: amount}, true
}

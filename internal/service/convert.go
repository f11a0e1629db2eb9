package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

// displayPlaces is how many fractional digits amounts carry on the wire.
const displayPlaces = 2

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Username:  u.Username,
		UPI:       u.UPI,
		CreatedAt: u.CreatedAt,
	}
}

// toPublicUser is toAPIUser without the email address.
func toPublicUser(u *models.User) *api.User {
	user := toAPIUser(u)
	user.Email = ""
	return user
}

func toAPIMembers(members []models.Member) []api.Member {
	out := make([]api.Member, len(members))
	for i, m := range members {
		out[i] = api.Member{ID: m.ID, Name: m.Name}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		PaidBy:       api.Member{ID: e.PaidBy.ID, Name: e.PaidBy.Name},
		Amount:       e.Amount,
		SplitMembers: toAPIMembers(e.SplitMembers),
		Shares:       toAPIShares(e),
		CreatedAt:    e.CreatedAt,
	}
}

// toAPIShares lists each split member once with everything they owe.
func toAPIShares(e *models.Expense) []api.MemberShare {
	shares := calculator.Shares(toCalcExpense(e))
	out := make([]api.MemberShare, 0, len(shares))
	for _, m := range e.SplitMembers {
		amount, ok := shares[m.ID]
		if !ok {
			continue
		}
		delete(shares, m.ID)
		out = append(out, api.MemberShare{
			Member: api.Member{ID: m.ID, Name: m.Name},
			Amount: amount.Round(displayPlaces),
		})
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	group := &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatorID: g.CreatorID,
		Members:   toAPIMembers(g.Members),
		CreatedAt: g.CreatedAt,
	}
	for _, e := range g.Expenses {
		group.Expenses = append(group.Expenses, toAPIExpense(e))
	}
	return group
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:         s.ID,
		PayerID:    s.PayerID,
		ReceiverID: s.ReceiverID,
		Amount:     s.Amount,
		Note:       s.Note,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
	}
}

func fromCalcMember(m calculator.Member) api.Member {
	return api.Member{ID: m.ID, Name: m.Name}
}

func toCalcMember(m models.Member) calculator.Member {
	return calculator.Member{ID: m.ID, Name: m.Name}
}

func toCalcExpense(e *models.Expense) *calculator.Expense {
	split := make([]calculator.Member, len(e.SplitMembers))
	for i, m := range e.SplitMembers {
		split[i] = toCalcMember(m)
	}
	return &calculator.Expense{
		ID:           e.ID,
		PaidBy:       toCalcMember(e.PaidBy),
		Amount:       e.Amount,
		SplitMembers: split,
		CreatedAt:    e.CreatedAt,
	}
}

func toCalcGroups(groups []*models.Group) []calculator.Group {
	out := make([]calculator.Group, len(groups))
	for i, g := range groups {
		members := make([]calculator.Member, len(g.Members))
		for j, m := range g.Members {
			members[j] = toCalcMember(m)
		}
		expenses := make([]*calculator.Expense, len(g.Expenses))
		for j, e := range g.Expenses {
			expenses[j] = toCalcExpense(e)
		}
		out[i] = calculator.Group{Members: members, Expenses: expenses}
	}
	return out
}

func toCalcSettlements(settlements []*models.Settlement) []calculator.Settlement {
	out := make([]calculator.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = calculator.Settlement{
			PayerID:    s.PayerID,
			ReceiverID: s.ReceiverID,
			Amount:     s.Amount,
			CreatedAt:  s.CreatedAt,
		}
	}
	return out
}

func toAPIFriendBalance(l calculator.FriendLedger) api.FriendBalance {
	return api.FriendBalance{
		Friend:       fromCalcMember(l.Friend),
		UserCanPay:   l.UserCanPay.Round(displayPlaces),
		FriendCanPay: l.FriendCanPay.Round(displayPlaces),
		Net:          l.Net.Round(displayPlaces),
	}
}

package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// loadGroups returns the requested groups with their expenses, or every
// group userID belongs to when groupIDs is empty. The caller must be a
// member of each requested group.
func loadGroups(ctx context.Context, store storage.Store, userID string, groupIDs []string) ([]*models.Group, error) {
	if len(groupIDs) == 0 {
		summaries, err := store.ListGroupsByMember(ctx, userID)
		if err != nil {
			return nil, toConnectError(err)
		}
		for _, g := range summaries {
			groupIDs = append(groupIDs, g.ID)
		}
	}

	seen := make(map[string]bool, len(groupIDs))
	groups := make([]*models.Group, 0, len(groupIDs))
	for _, id := range groupIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		group, err := store.GetGroup(ctx, id)
		if err != nil {
			return nil, toConnectError(err)
		}
		if !group.HasMember(userID) {
			return nil, connect.NewError(connect.CodePermissionDenied, errGroupMembership)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// settlementsAmong returns every settlement whose payer and receiver are
// both in memberIDs, each once.
func settlementsAmong(ctx context.Context, store storage.Store, memberIDs []string) ([]*models.Settlement, error) {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	seen := make(map[string]bool)
	var out []*models.Settlement
	for _, id := range memberIDs {
		settlements, err := store.ListSettlements(ctx, storage.SettlementFilter{PayerID: id})
		if err != nil {
			return nil, toConnectError(err)
		}
		for _, s := range settlements {
			if seen[s.ID] || !members[s.ReceiverID] {
				continue
			}
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// friendLedgers computes the caller's ledger with every friend across all
// the caller's groups.
func friendLedgers(ctx context.Context, store storage.Store, userID string) ([]calculator.FriendLedger, error) {
	groups, err := loadGroups(ctx, store, userID, nil)
	if err != nil {
		return nil, err
	}
	settlements, err := store.ListSettlements(ctx, storage.SettlementFilter{ParticipantID: userID})
	if err != nil {
		return nil, toConnectError(err)
	}

	calcGroups := toCalcGroups(groups)
	var expenses []*calculator.Expense
	for _, g := range calcGroups {
		expenses = append(expenses, g.Expenses...)
	}
	calcSettlements := toCalcSettlements(settlements)

	friends := calculator.UniqueFriends(calcGroups, userID)
	ledgers := make([]calculator.FriendLedger, len(friends))
	for i, friend := range friends {
		ledgers[i] = calculator.FriendBalance(userID, friend, expenses, calcSettlements)
	}
	return ledgers, nil
}

// friendLedger is friendLedgers narrowed to one friend. It is NotFound when
// friendID shares no group with the caller.
func friendLedger(ctx context.Context, store storage.Store, userID, friendID string) (calculator.FriendLedger, error) {
	ledgers, err := friendLedgers(ctx, store, userID)
	if err != nil {
		return calculator.FriendLedger{}, err
	}
	for _, l := range ledgers {
		if l.Friend.ID == friendID {
			return l, nil
		}
	}
	return calculator.FriendLedger{}, connect.NewError(connect.CodeNotFound, errNotFriend)
}

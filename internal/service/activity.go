package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ListActivity merges the expenses of the selected groups with the caller's
// settlements with members of those groups, newest first.
func (s *GroupService) ListActivity(ctx context.Context, req *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	switch {
	case limit < 0:
		return nil, invalidArgument("limit must not be negative")
	case limit == 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}

	slog.Info("ListActivity request received", "user_id", userID, "groups", len(req.Msg.GroupIDs), "limit", limit)

	groups, err := loadGroups(ctx, s.store, userID, req.Msg.GroupIDs)
	if err != nil {
		slog.Warn("ListActivity: failed to load groups", "error", err)
		return nil, err
	}

	var items []api.Activity
	members := make(map[string]bool)
	for _, g := range groups {
		for _, id := range g.MemberIDs() {
			members[id] = true
		}
		for _, e := range g.Expenses {
			items = append(items, api.Activity{
				Kind:      api.ActivityExpense,
				GroupID:   g.ID,
				GroupName: g.Name,
				Expense:   toAPIExpense(e),
				CreatedAt: e.CreatedAt,
			})
		}
	}

	settlements, err := s.store.ListSettlements(ctx, storage.SettlementFilter{ParticipantID: userID})
	if err != nil {
		slog.Error("ListActivity: failed to list settlements", "error", err)
		return nil, toConnectError(err)
	}
	for _, st := range settlements {
		counterparty := st.ReceiverID
		if counterparty == userID {
			counterparty = st.PayerID
		}
		if !members[counterparty] {
			continue
		}
		items = append(items, api.Activity{
			Kind:       api.ActivitySettlement,
			Settlement: toAPISettlement(st),
			CreatedAt:  st.CreatedAt,
		})
	}

	slices.SortStableFunc(items, func(a, b api.Activity) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}

	slog.Info("ListActivity successful", "user_id", userID, "count", len(items))
	return connect.NewResponse(&api.ListActivityResponse{Items: items}), nil
}

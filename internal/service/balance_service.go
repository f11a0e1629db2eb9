package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/upi"
	"github.com/mmynk/settleup/pkg/api"
)

// BalanceService implements the Connect BalanceService
type BalanceService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewBalanceService creates a new BalanceService. m may be nil.
func NewBalanceService(store storage.Store, m *metrics.Metrics) *BalanceService {
	return &BalanceService{store: store, metrics: m}
}

// SimplifyDebts nets every expense of the selected groups, re-bases the
// balances on the settlements recorded between their members and returns
// the transfers that clear what is left.
func (s *BalanceService) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("SimplifyDebts request received", "user_id", userID, "groups", len(req.Msg.GroupIDs))

	groups, err := loadGroups(ctx, s.store, userID, req.Msg.GroupIDs)
	if err != nil {
		slog.Warn("SimplifyDebts: failed to load groups", "error", err)
		return nil, err
	}

	calcGroups := toCalcGroups(groups)
	var memberIDs []string
	for _, g := range groups {
		memberIDs = append(memberIDs, g.MemberIDs()...)
	}
	settlements, err := settlementsAmong(ctx, s.store, uniqueIDs(memberIDs))
	if err != nil {
		return nil, err
	}

	summary := calculator.Summarize(calcGroups, toCalcSettlements(settlements))
	s.metrics.ObserveTransfers(len(summary.Transfers))

	balances := make([]api.MemberBalance, len(summary.Balances))
	for i, b := range summary.Balances {
		balances[i] = api.MemberBalance{
			Member: fromCalcMember(b.Member),
			Amount: b.Amount.Round(displayPlaces),
		}
	}
	transfers := make([]api.Transfer, 0, len(summary.Transfers))
	for _, t := range summary.Transfers {
		amount := t.Amount.Round(displayPlaces)
		// Sub-paisa residue from uneven shares.
		if !amount.IsPositive() {
			continue
		}
		transfers = append(transfers, api.Transfer{
			From:   fromCalcMember(t.From),
			To:     fromCalcMember(t.To),
			Amount: amount,
		})
	}

	slog.Info("SimplifyDebts successful",
		"user_id", userID,
		"groups_count", len(groups),
		"settlements_count", len(settlements),
		"members_count", len(balances),
		"transfers_count", len(transfers),
	)

	return connect.NewResponse(&api.SimplifyDebtsResponse{
		Balances:  balances,
		Transfers: transfers,
	}), nil
}

// GetFriendBalances returns the caller's position with every friend.
func (s *BalanceService) GetFriendBalances(ctx context.Context, req *connect.Request[api.GetFriendBalancesRequest]) (*connect.Response[api.GetFriendBalancesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	ledgers, err := friendLedgers(ctx, s.store, userID)
	if err != nil {
		slog.Warn("GetFriendBalances failed", "user_id", userID, "error", err)
		return nil, err
	}

	out := make([]api.FriendBalance, len(ledgers))
	for i, l := range ledgers {
		out[i] = toAPIFriendBalance(l)
	}

	slog.Info("GetFriendBalances successful", "user_id", userID, "friends_count", len(out))

	return connect.NewResponse(&api.GetFriendBalancesResponse{Friends: out}), nil
}

// GetPaymentLink returns a UPI link paying a friend what the caller owes them.
func (s *BalanceService) GetPaymentLink(ctx context.Context, req *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetPaymentLink request received", "user_id", userID, "friend_id", req.Msg.FriendID)

	if req.Msg.FriendID == "" {
		return nil, invalidArgument("friend_id required")
	}

	ledger, err := friendLedger(ctx, s.store, userID, req.Msg.FriendID)
	if err != nil {
		return nil, err
	}
	owed := ledger.Net.Neg().Round(displayPlaces)
	if !owed.IsPositive() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("you don't owe %s anything", ledger.Friend.Name))
	}

	friend, err := s.store.GetUserByID(ctx, req.Msg.FriendID)
	if err != nil {
		return nil, toConnectError(err)
	}

	link, err := upi.Link(friend.UPI, friend.Name, owed)
	if errors.Is(err, upi.ErrMissingVPA) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetPaymentLinkResponse{
		Link:   link,
		Amount: owed,
	}), nil
}

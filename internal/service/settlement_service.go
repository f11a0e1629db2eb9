package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlement records a payment that already happened between two users.
// The caller must be the payer or the receiver.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	slog.Info("RecordSettlement request received",
		"payer_id", msg.PayerID,
		"receiver_id", msg.ReceiverID,
		"amount", msg.Amount,
	)

	switch {
	case msg.PayerID == "" || msg.ReceiverID == "":
		return nil, invalidArgument("payer_id and receiver_id required")
	case msg.PayerID == msg.ReceiverID:
		return nil, invalidArgument("payer and receiver must differ")
	case !msg.Amount.IsPositive():
		return nil, invalidArgument("amount must be positive")
	}
	if userID != msg.PayerID && userID != msg.ReceiverID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("you must be the payer or the receiver"))
	}

	users, err := s.store.GetUsersByIDs(ctx, []string{msg.PayerID, msg.ReceiverID})
	if err != nil {
		return nil, toConnectError(err)
	}
	for _, id := range []string{msg.PayerID, msg.ReceiverID} {
		if _, ok := users[id]; !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %s", errUnknownUser, id))
		}
	}

	settlement := &models.Settlement{
		PayerID:    msg.PayerID,
		ReceiverID: msg.ReceiverID,
		Amount:     msg.Amount,
		CreatedBy:  userID,
		Note:       strings.TrimSpace(msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements lists the caller's settlements, newest first, optionally
// narrowed by payer and receiver.
func (s *SettlementService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlements(ctx, storage.SettlementFilter{
		PayerID:       req.Msg.PayerID,
		ReceiverID:    req.Msg.ReceiverID,
		ParticipantID: userID,
	})
	if err != nil {
		slog.Error("ListSettlements failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Settlement, len(settlements))
	for i, settlement := range settlements {
		out[i] = toAPISettlement(settlement)
	}

	slog.Info("ListSettlements successful", "user_id", userID, "count", len(out))

	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}

// SettleUp records whatever settlement brings the caller and a friend to
// even. It returns no settlement when they already are.
func (s *SettlementService) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("SettleUp request received", "user_id", userID, "friend_id", req.Msg.FriendID)

	if req.Msg.FriendID == "" || req.Msg.FriendID == userID {
		return nil, invalidArgument("friend_id required")
	}

	ledger, err := friendLedger(ctx, s.store, userID, req.Msg.FriendID)
	if err != nil {
		return nil, err
	}

	pending, ok := calculator.SettleUpSettlement(userID, ledger)
	if !ok {
		slog.Info("SettleUp: already even", "user_id", userID, "friend_id", req.Msg.FriendID)
		return connect.NewResponse(&api.SettleUpResponse{}), nil
	}

	settlement := &models.Settlement{
		PayerID:    pending.PayerID,
		ReceiverID: pending.ReceiverID,
		Amount:     pending.Amount,
		CreatedBy:  userID,
		Note:       strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("SettleUp failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settled up",
		"settlement_id", settlement.ID,
		"payer_id", settlement.PayerID,
		"receiver_id", settlement.ReceiverID,
		"amount", settlement.Amount,
	)

	return connect.NewResponse(&api.SettleUpResponse{Settlement: toAPISettlement(settlement)}), nil
}

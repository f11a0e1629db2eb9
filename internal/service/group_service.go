package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// uniqueIDs drops empty and repeated IDs, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// resolveMembers looks every ID up and returns them as members in order.
func (s *GroupService) resolveMembers(ctx context.Context, ids []string) ([]models.Member, error) {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, toConnectError(err)
	}
	members := make([]models.Member, len(ids))
	for i, id := range ids {
		u, ok := users[id]
		if !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %s", errUnknownUser, id))
		}
		members[i] = u.Member()
	}
	return members, nil
}

// CreateGroup creates a new group. The caller is always its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	members, err := s.resolveMembers(ctx, uniqueIDs(append([]string{userID}, req.Msg.MemberIDs...)))
	if err != nil {
		slog.Warn("CreateGroup member lookup failed", "error", err)
		return nil, err
	}

	group := &models.Group{
		Name:      name,
		CreatorID: userID,
		Members:   members,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group with its activity. Only members may view it.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	groups, err := loadGroups(ctx, s.store, userID, []string{req.Msg.GroupID})
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, err
	}
	group := groups[0]

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves the caller's groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("ListGroups request received", "user_id", userID)

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group and its expenses. Only the creator may delete it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	if group.CreatorID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("only the group creator can delete this group"))
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddExpense records an expense split evenly among some group members.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	slog.Info("AddExpense request received",
		"group_id", msg.GroupID,
		"paid_by", msg.PaidBy,
		"amount", msg.Amount,
		"split_count", len(msg.SplitMemberIDs),
	)

	description := strings.TrimSpace(msg.Description)
	switch {
	case description == "":
		return nil, invalidArgument("description required")
	case msg.PaidBy == "":
		return nil, invalidArgument("paid_by required")
	case msg.GroupID == "":
		return nil, invalidArgument("group_id required")
	case !msg.Amount.IsPositive():
		return nil, invalidArgument("amount must be positive")
	}
	splitIDs := uniqueIDs(msg.SplitMemberIDs)
	if len(splitIDs) == 0 {
		return nil, invalidArgument("at least one split member required")
	}

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Warn("AddExpense: failed to get group", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	if !group.HasMember(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errGroupMembership)
	}

	byID := make(map[string]models.Member, len(group.Members))
	for _, m := range group.Members {
		byID[m.ID] = m
	}
	payer, ok := byID[msg.PaidBy]
	if !ok {
		return nil, invalidArgument("payer %s is not a member of this group", msg.PaidBy)
	}
	split := make([]models.Member, len(splitIDs))
	for i, id := range splitIDs {
		m, ok := byID[id]
		if !ok {
			return nil, invalidArgument("split member %s is not a member of this group", id)
		}
		split[i] = m
	}

	expense := &models.Expense{
		GroupID:      group.ID,
		Description:  description,
		PaidBy:       payer,
		Amount:       msg.Amount,
		SplitMembers: split,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "group_id", group.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense. Any member of its group may delete it.
func (s *GroupService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Warn("DeleteExpense: failed to get expense", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !group.HasMember(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errGroupMembership)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID, "group_id", group.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

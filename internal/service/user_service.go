package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

	// handle@provider, e.g. alice.s@okbank
	vpaPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{2,256}@[a-zA-Z]{2,64}$`)

	errInvalidUsername = errors.New("username must be 3-30 characters of a-z, 0-9, '_' or '.'")
	errInvalidVPA      = errors.New("UPI ID must look like name@bank")
)

// normalizeUsername lowercases and validates an optional username.
func normalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", nil
	}
	if !usernamePattern.MatchString(username) {
		return "", errInvalidUsername
	}
	return username, nil
}

// UserService implements the Connect UserService
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetProfile returns a user's profile by ID or username, or the caller's own.
// It is served without a session; anonymous callers must name the user and
// do not see email addresses.
func (s *UserService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	userID := middleware.GetUserID(ctx)

	var (
		user *models.User
		err  error
	)
	switch {
	case req.Msg.UserID != "":
		user, err = s.store.GetUserByID(ctx, req.Msg.UserID)
	case req.Msg.Username != "":
		user, err = s.store.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Msg.Username)))
	case userID != "":
		user, err = s.store.GetUserByID(ctx, userID)
	default:
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if err != nil {
		slog.Warn("GetProfile failed", "user_id", req.Msg.UserID, "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	if userID == "" {
		return connect.NewResponse(&api.GetProfileResponse{User: toPublicUser(user)}), nil
	}
	return connect.NewResponse(&api.GetProfileResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile replaces the caller's name, username and UPI ID.
func (s *UserService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("UpdateProfile request received", "user_id", userID)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}
	username, err := normalizeUsername(req.Msg.Username)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	vpa := strings.TrimSpace(req.Msg.UPI)
	if vpa != "" && !vpaPattern.MatchString(vpa) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errInvalidVPA)
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	user.Name = name
	user.Username = username
	user.UPI = vpa

	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("UpdateProfile failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Profile updated", "user_id", userID)
	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

// ListFriends returns everyone who shares a group with the caller.
func (s *UserService) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		slog.Error("ListFriends failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	friends := calculator.UniqueFriends(toCalcGroups(groups), userID)
	out := make([]api.Member, len(friends))
	for i, f := range friends {
		out[i] = fromCalcMember(f)
	}

	slog.Info("ListFriends successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListFriendsResponse{Friends: out}), nil
}

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// SearchUsers is the directory used to pick group members. The caller is
// left out and so are email addresses.
func (s *UserService) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	switch {
	case limit < 0:
		return nil, invalidArgument("limit must not be negative")
	case limit == 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}
	query := strings.TrimSpace(req.Msg.Query)

	slog.Info("SearchUsers request received", "user_id", userID, "query", query, "limit", limit)

	// One extra row in case the caller matches.
	users, err := s.store.SearchUsers(ctx, query, limit+1)
	if err != nil {
		slog.Error("SearchUsers failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.User, 0, len(users))
	for _, u := range users {
		if u.ID == userID || len(out) == limit {
			continue
		}
		out = append(out, toPublicUser(u))
	}

	slog.Info("SearchUsers successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.SearchUsersResponse{Users: out}), nil
}

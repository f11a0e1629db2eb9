package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService.
const UserServiceName = PackageName + ".UserService"

// Procedure paths served by the UserService.
const (
	UserServiceGetProfileProcedure    = "/" + UserServiceName + "/GetProfile"
	UserServiceUpdateProfileProcedure = "/" + UserServiceName + "/UpdateProfile"
	UserServiceListFriendsProcedure   = "/" + UserServiceName + "/ListFriends"
	UserServiceSearchUsersProcedure   = "/" + UserServiceName + "/SearchUsers"
)

// UserServiceHandler is implemented by the server side of the UserService.
type UserServiceHandler interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	// ListFriends returns every member of the caller's groups except the caller.
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + UserServiceName + "/", route(map[string]http.Handler{
		UserServiceGetProfileProcedure:    connect.NewUnaryHandler(UserServiceGetProfileProcedure, svc.GetProfile, opts...),
		UserServiceUpdateProfileProcedure: connect.NewUnaryHandler(UserServiceUpdateProfileProcedure, svc.UpdateProfile, opts...),
		UserServiceListFriendsProcedure:   connect.NewUnaryHandler(UserServiceListFriendsProcedure, svc.ListFriends, opts...),
		UserServiceSearchUsersProcedure:   connect.NewUnaryHandler(UserServiceSearchUsersProcedure, svc.SearchUsers, opts...),
	})
}

// UserServiceClient is a client for the UserService.
type UserServiceClient interface {
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
	ListFriends(context.Context, *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error)
	SearchUsers(context.Context, *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error)
}

type userServiceClient struct {
	getProfile    *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
	updateProfile *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
	listFriends   *connect.Client[api.ListFriendsRequest, api.ListFriendsResponse]
	searchUsers   *connect.Client[api.SearchUsersRequest, api.SearchUsersResponse]
}

// NewUserServiceClient constructs a client for the UserService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	opts = clientOptions(opts)
	return &userServiceClient{
		getProfile:    connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](httpClient, baseURL+UserServiceGetProfileProcedure, opts...),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL+UserServiceUpdateProfileProcedure, opts...),
		listFriends:   connect.NewClient[api.ListFriendsRequest, api.ListFriendsResponse](httpClient, baseURL+UserServiceListFriendsProcedure, opts...),
		searchUsers:   connect.NewClient[api.SearchUsersRequest, api.SearchUsersResponse](httpClient, baseURL+UserServiceSearchUsersProcedure, opts...),
	}
}

func (c *userServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

func (c *userServiceClient) ListFriends(ctx context.Context, req *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

func (c *userServiceClient) SearchUsers(ctx context.Context, req *connect.Request[api.SearchUsersRequest]) (*connect.Response[api.SearchUsersResponse], error) {
	return c.searchUsers.CallUnary(ctx, req)
}

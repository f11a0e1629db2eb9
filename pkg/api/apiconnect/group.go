package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = PackageName + ".GroupService"

// Procedure paths served by the GroupService.
const (
	GroupServiceCreateGroupProcedure   = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure      = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure    = "/" + GroupServiceName + "/ListGroups"
	GroupServiceDeleteGroupProcedure   = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceAddExpenseProcedure    = "/" + GroupServiceName + "/AddExpense"
	GroupServiceDeleteExpenseProcedure = "/" + GroupServiceName + "/DeleteExpense"
	GroupServiceListActivityProcedure  = "/" + GroupServiceName + "/ListActivity"
)

// GroupServiceHandler is implemented by the server side of the GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	// ListActivity returns expenses and settlements across groups, newest first.
	ListActivity(context.Context, *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GroupServiceName + "/", route(map[string]http.Handler{
		GroupServiceCreateGroupProcedure:   connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		GroupServiceGetGroupProcedure:      connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...),
		GroupServiceListGroupsProcedure:    connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...),
		GroupServiceDeleteGroupProcedure:   connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		GroupServiceAddExpenseProcedure:    connect.NewUnaryHandler(GroupServiceAddExpenseProcedure, svc.AddExpense, opts...),
		GroupServiceDeleteExpenseProcedure: connect.NewUnaryHandler(GroupServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		GroupServiceListActivityProcedure:  connect.NewUnaryHandler(GroupServiceListActivityProcedure, svc.ListActivity, opts...),
	})
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListActivity(context.Context, *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error)
}

type groupServiceClient struct {
	createGroup   *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup      *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups    *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup   *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addExpense    *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listActivity  *connect.Client[api.ListActivityRequest, api.ListActivityResponse]
}

// NewGroupServiceClient constructs a client for the GroupService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:   connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:      connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:    connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		deleteGroup:   connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		addExpense:    connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+GroupServiceAddExpenseProcedure, opts...),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+GroupServiceDeleteExpenseProcedure, opts...),
		listActivity:  connect.NewClient[api.ListActivityRequest, api.ListActivityResponse](httpClient, baseURL+GroupServiceListActivityProcedure, opts...),
	}
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListActivity(ctx context.Context, req *connect.Request[api.ListActivityRequest]) (*connect.Response[api.ListActivityResponse], error) {
	return c.listActivity.CallUnary(ctx, req)
}

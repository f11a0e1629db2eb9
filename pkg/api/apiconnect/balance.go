package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = PackageName + ".BalanceService"

// Procedure paths served by the BalanceService.
const (
	BalanceServiceSimplifyDebtsProcedure     = "/" + BalanceServiceName + "/SimplifyDebts"
	BalanceServiceGetFriendBalancesProcedure = "/" + BalanceServiceName + "/GetFriendBalances"
	BalanceServiceGetPaymentLinkProcedure    = "/" + BalanceServiceName + "/GetPaymentLink"
)

// BalanceServiceHandler is implemented by the server side of the BalanceService.
type BalanceServiceHandler interface {
	// SimplifyDebts returns member balances and the transfers that clear them.
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	GetFriendBalances(context.Context, *connect.Request[api.GetFriendBalancesRequest]) (*connect.Response[api.GetFriendBalancesResponse], error)
	GetPaymentLink(context.Context, *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + BalanceServiceName + "/", route(map[string]http.Handler{
		BalanceServiceSimplifyDebtsProcedure:     connect.NewUnaryHandler(BalanceServiceSimplifyDebtsProcedure, svc.SimplifyDebts, opts...),
		BalanceServiceGetFriendBalancesProcedure: connect.NewUnaryHandler(BalanceServiceGetFriendBalancesProcedure, svc.GetFriendBalances, opts...),
		BalanceServiceGetPaymentLinkProcedure:    connect.NewUnaryHandler(BalanceServiceGetPaymentLinkProcedure, svc.GetPaymentLink, opts...),
	})
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	GetFriendBalances(context.Context, *connect.Request[api.GetFriendBalancesRequest]) (*connect.Response[api.GetFriendBalancesResponse], error)
	GetPaymentLink(context.Context, *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error)
}

type balanceServiceClient struct {
	simplifyDebts     *connect.Client[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse]
	getFriendBalances *connect.Client[api.GetFriendBalancesRequest, api.GetFriendBalancesResponse]
	getPaymentLink    *connect.Client[api.GetPaymentLinkRequest, api.GetPaymentLinkResponse]
}

// NewBalanceServiceClient constructs a client for the BalanceService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	opts = clientOptions(opts)
	return &balanceServiceClient{
		simplifyDebts:     connect.NewClient[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse](httpClient, baseURL+BalanceServiceSimplifyDebtsProcedure, opts...),
		getFriendBalances: connect.NewClient[api.GetFriendBalancesRequest, api.GetFriendBalancesResponse](httpClient, baseURL+BalanceServiceGetFriendBalancesProcedure, opts...),
		getPaymentLink:    connect.NewClient[api.GetPaymentLinkRequest, api.GetPaymentLinkResponse](httpClient, baseURL+BalanceServiceGetPaymentLinkProcedure, opts...),
	}
}

func (c *balanceServiceClient) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	return c.simplifyDebts.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetFriendBalances(ctx context.Context, req *connect.Request[api.GetFriendBalancesRequest]) (*connect.Response[api.GetFriendBalancesResponse], error) {
	return c.getFriendBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetPaymentLink(ctx context.Context, req *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error) {
	return c.getPaymentLink.CallUnary(ctx, req)
}

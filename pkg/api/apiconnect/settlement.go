package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService.
const SettlementServiceName = PackageName + ".SettlementService"

// Procedure paths served by the SettlementService.
const (
	SettlementServiceRecordSettlementProcedure = "/" + SettlementServiceName + "/RecordSettlement"
	SettlementServiceListSettlementsProcedure  = "/" + SettlementServiceName + "/ListSettlements"
	SettlementServiceSettleUpProcedure         = "/" + SettlementServiceName + "/SettleUp"
)

// SettlementServiceHandler is implemented by the server side of the SettlementService.
type SettlementServiceHandler interface {
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	SettleUp(context.Context, *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", route(map[string]http.Handler{
		SettlementServiceRecordSettlementProcedure: connect.NewUnaryHandler(SettlementServiceRecordSettlementProcedure, svc.RecordSettlement, opts...),
		SettlementServiceListSettlementsProcedure:  connect.NewUnaryHandler(SettlementServiceListSettlementsProcedure, svc.ListSettlements, opts...),
		SettlementServiceSettleUpProcedure:         connect.NewUnaryHandler(SettlementServiceSettleUpProcedure, svc.SettleUp, opts...),
	})
}

// SettlementServiceClient is a client for the SettlementService.
type SettlementServiceClient interface {
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
	SettleUp(context.Context, *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error)
}

type settlementServiceClient struct {
	recordSettlement *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	listSettlements  *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
	settleUp         *connect.Client[api.SettleUpRequest, api.SettleUpResponse]
}

// NewSettlementServiceClient constructs a client for the SettlementService. baseURL is the
// server root, e.g. http://localhost:8080.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	opts = clientOptions(opts)
	return &settlementServiceClient{
		recordSettlement: connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](httpClient, baseURL+SettlementServiceRecordSettlementProcedure, opts...),
		listSettlements:  connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+SettlementServiceListSettlementsProcedure, opts...),
		settleUp:         connect.NewClient[api.SettleUpRequest, api.SettleUpResponse](httpClient, baseURL+SettlementServiceSettleUpProcedure, opts...),
	}
}

func (c *settlementServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

func (c *settlementServiceClient) SettleUp(ctx context.Context, req *connect.Request[api.SettleUpRequest]) (*connect.Response[api.SettleUpResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}

package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const testPassword = "password123"

// testEnv is a running server backed by a temp SQLite database, with a
// typed client per service.
type testEnv struct {
	store    *sqlite.SQLiteStore
	registry *prometheus.Registry

	auth        apiconnect.AuthServiceClient
	users       apiconnect.UserServiceClient
	groups      apiconnect.GroupServiceClient
	settlements apiconnect.SettlementServiceClient
	balances    apiconnect.BalanceServiceClient
}

// testUser is a registered user and their session token.
type testUser struct {
	ID    string
	Name  string
	Token string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.OptionalAuth(jwtManager),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
			apiconnect.UserServiceGetProfileProcedure,
		),
		middleware.LoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(store), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, m), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		store:       store,
		registry:    registry,
		auth:        apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		users:       apiconnect.NewUserServiceClient(server.Client(), server.URL),
		groups:      apiconnect.NewGroupServiceClient(server.Client(), server.URL),
		settlements: apiconnect.NewSettlementServiceClient(server.Client(), server.URL),
		balances:    apiconnect.NewBalanceServiceClient(server.Client(), server.URL),
	}
}

// register creates a user named name with email <name>@example.com.
func (e *testEnv) register(t *testing.T, name string) testUser {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    strings.ToLower(name) + "@example.com",
		Name:     name,
		Password: testPassword,
	}))
	require.NoError(t, err)
	return testUser{ID: resp.Msg.User.ID, Name: name, Token: resp.Msg.Token}
}

// createGroup creates a group owned by creator with the other members.
func (e *testEnv) createGroup(t *testing.T, creator testUser, name string, members ...testUser) string {
	t.Helper()

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	resp, err := e.groups.CreateGroup(context.Background(), as(creator, &api.CreateGroupRequest{
		Name:      name,
		MemberIDs: ids,
	}))
	require.NoError(t, err)
	return resp.Msg.Group.ID
}

// addExpense records that payer paid amount for the split members.
func (e *testEnv) addExpense(t *testing.T, groupID string, payer testUser, amount string, split ...testUser) string {
	t.Helper()

	ids := make([]string, len(split))
	for i, m := range split {
		ids[i] = m.ID
	}
	resp, err := e.groups.AddExpense(context.Background(), as(payer, &api.AddExpenseRequest{
		GroupID:        groupID,
		Description:    "expense",
		PaidBy:         payer.ID,
		SplitMemberIDs: ids,
		Amount:         decimal.RequireFromString(amount),
	}))
	require.NoError(t, err)
	return resp.Msg.Expense.ID
}

// as builds a request authenticated as user.
func as[T any](user testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+user.Token)
	return req
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

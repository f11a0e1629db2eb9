package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

const (
	whoamiProcedure = "/test.v1.EchoService/Whoami"
	publicProcedure = "/test.v1.EchoService/Public"
	failProcedure   = "/test.v1.EchoService/Fail"
)

type whoamiRequest struct{}

type whoamiResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func whoami(ctx context.Context, _ *connect.Request[whoamiRequest]) (*connect.Response[whoamiResponse], error) {
	return connect.NewResponse(&whoamiResponse{UserID: GetUserID(ctx), Email: GetEmail(ctx)}), nil
}

func fail(context.Context, *connect.Request[whoamiRequest]) (*connect.Response[whoamiResponse], error) {
	return nil, connect.NewError(connect.CodeNotFound, errors.New("no such thing"))
}

// echoServer serves the three test procedures behind interceptors and
// returns a caller for each path.
func echoServer(t *testing.T, interceptors ...connect.Interceptor) func(procedure, token string) (*whoamiResponse, error) {
	t.Helper()

	opts := []connect.HandlerOption{
		connect.WithCodec(api.JSONCodec{}),
		connect.WithInterceptors(interceptors...),
	}
	mux := http.NewServeMux()
	mux.Handle(whoamiProcedure, connect.NewUnaryHandler(whoamiProcedure, whoami, opts...))
	mux.Handle(publicProcedure, connect.NewUnaryHandler(publicProcedure, whoami, opts...))
	mux.Handle(failProcedure, connect.NewUnaryHandler(failProcedure, fail, opts...))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return func(procedure, token string) (*whoamiResponse, error) {
		client := connect.NewClient[whoamiRequest, whoamiResponse](
			server.Client(), server.URL+procedure, connect.WithCodec(api.JSONCodec{}),
		)
		req := connect.NewRequest(&whoamiRequest{})
		if token != "" {
			req.Header().Set("Authorization", token)
		}
		resp, err := client.CallUnary(context.Background(), req)
		if err != nil {
			return nil, err
		}
		return resp.Msg, nil
	}
}

func testToken(t *testing.T, m *auth.JWTManager) string {
	t.Helper()
	token, err := m.Generate(&models.User{ID: "user-1", Email: "alice@example.com"})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"", "", auth.ErrMissingToken},
		{"Bearer abc.def", "abc.def", nil},
		{"Basic abc", "", auth.ErrInvalidToken},
		{"Bearer", "", auth.ErrInvalidToken},
		{"Bearer ", "", auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.header != "" {
			h.Set("Authorization", tt.header)
		}
		got, err := bearerToken(h)
		assert.ErrorIs(t, err, tt.wantErr, "header %q", tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	call := echoServer(t, RequireAuth(jwtManager, publicProcedure))
	token := testToken(t, jwtManager)

	resp, err := call(whoamiProcedure, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "alice@example.com", resp.Email)

	_, err = call(whoamiProcedure, "")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call(whoamiProcedure, "Bearer not-a-token")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	other := testToken(t, auth.NewJWTManager("other-secret", time.Hour))
	_, err = call(whoamiProcedure, other)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	resp, err = call(publicProcedure, "")
	require.NoError(t, err, "public procedures skip the check")
	assert.Empty(t, resp.UserID)
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	call := echoServer(t, OptionalAuth(jwtManager))

	resp, err := call(whoamiProcedure, testToken(t, jwtManager))
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID)

	resp, err = call(whoamiProcedure, "Bearer garbage")
	require.NoError(t, err)
	assert.Empty(t, resp.UserID)
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	call := echoServer(t, RequireAuth(jwtManager), LoggingInterceptor(logger))
	token := testToken(t, jwtManager)

	_, err := call(whoamiProcedure, token)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"RPC ok"`)
	assert.Contains(t, buf.String(), `"user_id":"user-1"`)
	assert.Contains(t, buf.String(), whoamiProcedure)

	buf.Reset()
	_, err = call(failProcedure, token)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"code":"not_found"`)
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	call := echoServer(t, MetricsInterceptor(m))

	_, err := call(whoamiProcedure, "")
	require.NoError(t, err)
	_, err = call(failProcedure, "")
	require.Error(t, err)
	_, err = call(failProcedure, "")
	require.Error(t, err)

	counterValue := func(procedure, code string) float64 {
		var metric dto.Metric
		require.NoError(t, m.RPCRequests.WithLabelValues(procedure, code).Write(&metric))
		return metric.GetCounter().GetValue()
	}
	assert.Equal(t, float64(1), counterValue(whoamiProcedure, "ok"))
	assert.Equal(t, float64(2), counterValue(failProcedure, "not_found"))

	var metric dto.Metric
	observer := m.RPCDuration.WithLabelValues(failProcedure)
	require.NoError(t, observer.(prometheus.Metric).Write(&metric))
	assert.Equal(t, uint64(2), metric.GetHistogram().GetSampleCount())
}

func TestCORS(t *testing.T) {
	var called bool
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/anything", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called, "preflight stops at CORS")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/anything", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, called)
}

func TestHTTPLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	handler := HTTPLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Contains(t, buf.String(), `"msg":"Request received"`)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
	assert.Contains(t, buf.String(), `"path":"/index.html"`)
}

func TestOptionalThenRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	call := echoServer(t, OptionalAuth(jwtManager), RequireAuth(jwtManager, publicProcedure))
	token := testToken(t, jwtManager)

	resp, err := call(whoamiProcedure, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID)

	_, err = call(whoamiProcedure, "Bearer garbage")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = call(whoamiProcedure, "")
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	resp, err = call(publicProcedure, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.UserID, "public procedures still see a signed-in caller")
	assert.Equal(t, "alice@example.com", resp.Email)

	resp, err = call(publicProcedure, "")
	require.NoError(t, err)
	assert.Empty(t, resp.UserID)
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
	"github.com/mmynk/settleup/pkg/logging"
)

// apiPrefix is the path prefix of every Connect procedure.
const apiPrefix = "/" + apiconnect.PackageName + "."

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.SetupWithOptions(cfg.Log)

	if cfg.JWTSecret == config.DevJWTSecret {
		logger.Warn("JWT_SECRET not set, signing sessions with the development secret")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		logger.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	logger.Info("Serving static files", "path", staticDir)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := newHandler(store, cfg, staticDir, registry, logger)

	// h2c serves HTTP/2 without TLS, which gRPC clients of Connect need.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.Addr()
	logger.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newHandler wires every service onto one mux behind the RPC interceptors,
// then adds /metrics and the static frontend.
func newHandler(store storage.Store, cfg *config.Config, staticDir string, registry *prometheus.Registry, logger *slog.Logger) http.Handler {
	m := metrics.New(registry)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

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
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, store, logger), interceptors))
	mux.Handle(apiconnect.NewUserServiceHandler(service.NewUserService(store), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(store), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(service.NewBalanceService(store, m), interceptors))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.Handle("/", staticHandler(staticDir))

	return middleware.HTTPLogging(logger, middleware.CORS(mux))
}

// staticHandler serves the frontend from dir. Unknown paths get index.html;
// unknown procedures under the API prefix get a plain 404.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

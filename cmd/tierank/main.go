package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/config"
	"github.com/kailas-cloud/tierank/internal/db"
	dbMemory "github.com/kailas-cloud/tierank/internal/db/memory"
	dbRedis "github.com/kailas-cloud/tierank/internal/db/redis"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	logpkg "github.com/kailas-cloud/tierank/internal/logger"
	"github.com/kailas-cloud/tierank/internal/metrics"
	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
	"github.com/kailas-cloud/tierank/internal/repository/seedstamp"
	chiTransport "github.com/kailas-cloud/tierank/internal/transport/chi"
	healthuc "github.com/kailas-cloud/tierank/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tierank/internal/usecase/search"
	"github.com/kailas-cloud/tierank/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tierank API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("alias_driver", cfg.Aliases.Driver),
		zap.Strings("alias_addrs", cfg.Aliases.Addrs),
	)

	ctx := context.Background()

	store, err := openStore(ctx, &cfg.Aliases)
	if err != nil {
		logger.Fatal("Alias store not ready", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Connected to alias store")

	metrics.RegisterRankingMetrics()

	aliases := aliasrepo.New(store, cfg.Aliases.KeyPrefix, logger,
		aliasrepo.WithLookupTimeout(time.Duration(cfg.Aliases.LookupTimeoutMS)*time.Millisecond),
		aliasrepo.WithLookupCounter(metrics.AliasLookupTotal),
	)
	if cfg.Aliases.SeedFile != "" {
		seed, err := aliasrepo.LoadSeedFile(cfg.Aliases.SeedFile)
		if err != nil {
			logger.Fatal("Failed to read alias seed", zap.Error(err))
		}
		loader := seedstamp.New(aliases, store, cfg.Aliases.KeyPrefix, metrics.SeedLoadTotal, logger)
		if _, err := loader.Load(ctx, seed); err != nil {
			logger.Fatal("Failed to load alias seed", zap.Error(err))
		}
	}

	searchSvc := searchuc.New(aliases, searchuc.Limits{
		DefaultLimit:   cfg.Ranking.DefaultLimit,
		MaxLimit:       cfg.Ranking.MaxLimit,
		MaxCandidates:  cfg.Ranking.MaxCandidates,
		MaxQueryLength: cfg.Ranking.MaxQueryLength,
		HeroOrder:      heroOrder(cfg.Ranking.HeroOrder),
	})
	healthSvc := healthuc.New(store, searchSvc)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorResponseCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the alias store for the configured driver and waits for it.
func openStore(ctx context.Context, cfg *config.AliasConfig) (db.Store, error) {
	var store db.Store
	switch cfg.Driver {
	case config.DriverMemory:
		store = dbMemory.NewStore()
	case config.DriverValkey, config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown alias driver %q", cfg.Driver)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("wait for %s store: %w", cfg.Driver, err)
	}
	return store, nil
}

func heroOrder(kinds []string) []source.Kind {
	if len(kinds) == 0 {
		return nil
	}
	out := make([]source.Kind, len(kinds))
	for i, k := range kinds {
		out[i] = source.Kind(k)
	}
	return out
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorResponseCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", routePattern(r)),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/lecture-allocator/internal/advisory"
	"github.com/example/lecture-allocator/internal/application"
	"github.com/example/lecture-allocator/internal/config"
	httptransport "github.com/example/lecture-allocator/internal/http"
	"github.com/example/lecture-allocator/internal/persistence"
	"github.com/example/lecture-allocator/internal/persistence/sqlite"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now
	rng := rand.New(rand.NewSource(now().UnixNano()))

	sessionRepo := sqlite.NewSessionRepository(storage)
	roomRepo := sqlite.NewRoomRepository(storage)
	userRepo := sqlite.NewUserRepository(storage)
	notificationRepo := sqlite.NewNotificationRepository(storage)
	decisionLogRepo := sqlite.NewDecisionLogRepository(storage)

	advisor := advisory.NewClient(advisory.Config{
		BaseURL: cfg.AdvisoryBaseURL,
		APIKey:  cfg.AdvisoryAPIKey,
		Model:   cfg.AdvisoryModel,
		Timeout: cfg.AdvisoryTimeout,
	}, nil)

	roomService := application.NewRoomService(roomRepo, cfg.RoomCacheTTL, logger)
	auditService := application.NewAuditService(decisionLogRepo, notificationRepo, logger)
	allocationService := application.NewAllocationService(
		sessionRepo,
		roomService,
		newAdminDirectoryAdapter(userRepo),
		advisor,
		application.AllocationConfig{SelectionPolicy: cfg.SelectionPolicy, Intn: rng.Intn},
		idGenerator,
		now,
		logger,
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Allocations: httptransport.NewAllocationHandler(allocationService, logger),
		Rooms:       httptransport.NewRoomHandler(roomService, logger),
		Audit:       httptransport.NewAuditHandler(auditService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.CORS(cfg.AllowedOrigins),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("allocator API listening", "addr", server.Addr, "advisory_enabled", advisor.Enabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type adminDirectoryAdapter struct {
	repo persistence.UserRepository
}

func newAdminDirectoryAdapter(repo persistence.UserRepository) *adminDirectoryAdapter {
	return &adminDirectoryAdapter{repo: repo}
}

func (a *adminDirectoryAdapter) ListAdmins(ctx context.Context) ([]persistence.User, error) {
	return a.repo.ListUsersByRole(ctx, persistence.RoleAdmin)
}

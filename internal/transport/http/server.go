package http

import (
	"context"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"islandfeed/internal/config"
	"islandfeed/internal/database"
	"islandfeed/internal/handler"
	"islandfeed/internal/repository"
	"islandfeed/internal/service"
)

// Run wires the whole service together and blocks until shutdown. The
// storage handle is created here and passed down explicitly; its lifecycle
// is tied to this function.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	islanderRepo := repository.NewIslanderRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	userService := service.NewUserService(userRepo, followRepo)
	authService := service.NewAuthService(refreshTokenRepo, userRepo, cfg)
	postService := service.NewPostService(postRepo)
	engagementService := service.NewEngagementService(postRepo, db)
	followService := service.NewFollowService(followRepo, userRepo, db)
	islanderService := service.NewIslanderService(islanderRepo)

	// Handlers
	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(userService, authService),
		UserHandler:     handler.NewUserHandler(userService),
		FollowHandler:   handler.NewFollowHandler(followService),
		PostHandler:     handler.NewPostHandler(postService, engagementService),
		IslanderHandler: handler.NewIslanderHandler(islanderService),
		JWTSecret:       cfg.JWTSecret,
		CORSOrigins:     cfg.CORSAllowedOrigins,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go cleanupExpiredTokens(cleanupCtx, refreshTokenRepo)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// cleanupExpiredTokens periodically removes refresh tokens that expired more
// than a day ago. Active and recently expired tokens stay around so reuse
// detection has history to work with.
func cleanupExpiredTokens(ctx context.Context, repo repository.RefreshTokenRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx, 24*time.Hour)
			if err != nil {
				slog.Error("refresh token cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				slog.Info("cleaned up expired refresh tokens", "count", deleted)
			}
		}
	}
}

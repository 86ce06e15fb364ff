package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-music-api/internal/config"
	"go-music-api/internal/database"
	"go-music-api/internal/handler"
	"go-music-api/internal/middleware"
	"go-music-api/internal/repository"
	"go-music-api/internal/router"
	"go-music-api/internal/service"
	"go-music-api/internal/spotify"
	"go-music-api/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
	tokens *repository.TokenRepository
}

// New is the composition root: every component is built here and handed its
// collaborators explicitly.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	slog.Info("database ready")

	signer, err := token.NewSigner(token.Config{
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessKey:  cfg.JWTAccessTokenKey,
		RefreshKey: cfg.JWTRefreshTokenKey,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}

	spotifyClient, err := spotify.NewClient(spotify.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		BaseURL:      cfg.SpotifyBaseURL,
		Timeout:      cfg.SpotifyTimeout,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize spotify client: %w", err)
	}

	identity := service.NewIdentityValidator(userRepo)
	authService := service.NewAuthService(signer, identity, userRepo, tokenRepo)
	catalogService := service.NewCatalogService(spotifyClient, likeRepo)
	libraryService := service.NewLibraryService(likeRepo, spotifyClient)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Health:  healthHandler(db),
		Auth:    handler.NewAuthHandler(authService),
		Album:   handler.NewAlbumHandler(catalogService, libraryService),
		Track:   handler.NewTrackHandler(catalogService, libraryService),
		Artist:  handler.NewArtistHandler(catalogService, libraryService),
		Search:  handler.NewSearchHandler(catalogService),
		User:    handler.NewUserHandler(authService),
		Library: handler.NewLibraryHandler(libraryService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db, tokens: tokenRepo}, nil
}

func (a *App) Run() error {
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go a.cleanExpiredTokens(janitorCtx)

	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// cleanExpiredTokens periodically removes refresh tokens past their expiry.
// Expired rows are already invisible to lookups; this keeps the table small.
func (a *App) cleanExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.tokens.CleanExpired(ctx)
			if err != nil {
				slog.Warn("refresh token cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("expired refresh tokens removed", "count", removed)
			}
		}
	}
}

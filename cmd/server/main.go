// Command server runs the LibraryHub REST API: a library-management backend
// persisting its collections to flat JSON files under a data directory.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/libhub/go-library-backend/internal/config"
	"github.com/libhub/go-library-backend/internal/domain"
	httpapi "github.com/libhub/go-library-backend/internal/http"
	"github.com/libhub/go-library-backend/internal/observability"
	"github.com/libhub/go-library-backend/internal/services"
	"github.com/libhub/go-library-backend/internal/session"
	"github.com/libhub/go-library-backend/internal/store"
	"github.com/libhub/go-library-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Collections: one JSON array per logical collection, lazily seeded.
	books := store.NewCollection(filepath.Join(cfg.DataDir, "books.json"), store.SeedBooks())
	users := store.NewCollection(filepath.Join(cfg.DataDir, "users.json"), store.SeedUsers())
	borrowing := store.NewCollection[domain.BorrowRecord](filepath.Join(cfg.DataDir, "borrowing.json"), nil)
	sessions := session.NewFileStore(filepath.Join(cfg.DataDir, "sessions.json"))

	svcs := httpapi.Services{
		Borrowing: services.NewBorrowService(borrowing),
		Books:     services.NewBookService(books),
		Users:     services.NewUserService(users),
		Cart:      session.NewManager(sessions),
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	httpapi.RegisterRoutes(engine, svcs, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("data_dir", cfg.DataDir).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	grpcrouter "github.com/dtroode/chirper-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/chirper-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/chirper-server/internal/api/http/context"
	httprouter "github.com/dtroode/chirper-server/internal/api/http/router"
	httpserver "github.com/dtroode/chirper-server/internal/api/http/server"
	"github.com/dtroode/chirper-server/internal/config"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/metrics"
	"github.com/dtroode/chirper-server/internal/model"
	"github.com/dtroode/chirper-server/internal/repository/postgres"
	"github.com/dtroode/chirper-server/internal/server"
	"github.com/dtroode/chirper-server/internal/service"
	storage "github.com/dtroode/chirper-server/internal/storage/minio"
	"github.com/dtroode/chirper-server/internal/telemetry"
	"github.com/dtroode/chirper-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)
	if cfg.HTTP.RequestTimeout >= cfg.HTTP.WriteTimeout {
		logger.Fatal("request timeout must be shorter than the write timeout",
			"request_timeout", cfg.HTTP.RequestTimeout,
			"write_timeout", cfg.HTTP.WriteTimeout)
	}

	logAppVersion()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	media, err := storage.NewClient(ctx, minioClient, storage.Options{
		Bucket:        cfg.Storage.Bucket,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize media storage", "error", err)
	}

	collector := metrics.NewCollector("chirper")

	userRepo := postgres.NewUserRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	tweetRepo := postgres.NewTweetRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	tokenService := service.NewTokenService(token.NewJWT(cfg.JWT.Secret), sessionRepo, userRepo, logger)
	authService := service.NewAuth(userRepo, tokenService, collector, logger)
	userService := service.NewUser(userRepo, followRepo, media, collector, logger)
	tweetService := service.NewTweet(tweetRepo, userRepo, media, collector, logger)
	commentService := service.NewComment(commentRepo, tweetRepo, collector, logger)
	healthService := service.NewHealth(map[string]model.ReadinessChecker{
		"database": db,
		"media":    media,
	})

	httpHandler := httprouter.New(
		httprouter.Services{
			Auth:          authService,
			Authenticator: authService,
			User:          userService,
			Tweet:         tweetService,
			Comment:       commentService,
			Readiness:     healthService,
		},
		httprouter.Options{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			MaxUploadBytes: cfg.Media.MaxUploadBytes,
			RequestTimeout: cfg.HTTP.RequestTimeout,
			Debug:          cfg.Debug,
		},
		httpctx.NewManager(),
		collector,
		logger,
	).Register()

	httpSrv := httpserver.NewHTTPServer(httpHandler, fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	grpcSrv := grpcserver.NewGRPCServer(grpcrouter.New(healthService, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	servers := []model.Server{httpSrv, grpcSrv}
	layers := map[string]model.SecurityLayer{
		httpSrv.Name(): server.NewSecurityLayer(cfg.HTTP.TLS, "http/1.1"),
		grpcSrv.Name(): server.NewSecurityLayer(cfg.GRPC.TLS, "h2"),
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			logger.Info("Starting server", "name", s.Name(), "address", s.Address())
			if err := s.Start(layers[s.Name()]); err != nil {
				return fmt.Errorf("%s server: %w", s.Name(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s server: %w", s.Name(), err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

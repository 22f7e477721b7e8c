package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/assetd/internal/config"
	"github.com/xxxsen/assetd/internal/db"
	"github.com/xxxsen/assetd/internal/handler"
	"github.com/xxxsen/assetd/internal/job"
	"github.com/xxxsen/assetd/internal/middleware"
	"github.com/xxxsen/assetd/internal/objectstore"
	"github.com/xxxsen/assetd/internal/repo"
	"github.com/xxxsen/assetd/internal/schedule"
	"github.com/xxxsen/assetd/internal/service"
)

const (
	dbWaitAttempts = 10
	dbWaitInterval = 3 * time.Second
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "assetd",
		Short: "asset storage and delivery server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run assetd server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.WaitReady(context.Background(), conn, dbWaitAttempts, dbWaitInterval); err != nil {
				return err
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("object_store", cfg.ObjectStore.Type),
	)

	assetRepo := repo.NewAssetRepo(conn)
	versionRepo := repo.NewVersionRepo(conn)
	tokenRepo := repo.NewTokenRepo(conn)

	store, err := objectstore.New(cfg.ObjectStore)
	if err != nil {
		return fmt.Errorf("init object store: %w", err)
	}

	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	assetService := service.NewAssetService(assetRepo, versionRepo, tokenRepo, store, tokenTTL)
	deliveryService := service.NewDeliveryService(assetRepo, versionRepo, tokenRepo, store)

	deps := handler.RouterDeps{
		Assets:   handler.NewAssetHandler(assetService, cfg.MaxUploadBytes),
		Delivery: handler.NewDeliveryHandler(deliveryService),
	}

	engine, err := webapi.NewEngine(
		"/",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewTokenCleanupJob(tokenRepo), cfg.TokenCleanupSpec); err != nil {
		return fmt.Errorf("schedule token cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

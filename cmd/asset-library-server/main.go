// Package main provides the asset library server entry point. It hosts the
// filtered catalog, the submission workflow, the master lists, and the
// scoring endpoint in a single process.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang/glog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/contentstudio/asset-library/pkg/audit"
	"github.com/contentstudio/asset-library/pkg/masters"
	"github.com/contentstudio/asset-library/pkg/server"
	"github.com/contentstudio/asset-library/pkg/store"
)

func main() {
	var (
		listenAddr   string
		configPath   string
		databaseType string
		databaseDSN  string
	)

	flag.StringVar(&listenAddr, "listen", "", "Address to listen on (overrides config)")
	flag.StringVar(&configPath, "config", "", "Path to server config YAML")
	flag.StringVar(&databaseType, "db-type", "", "Database type (sqlite, postgres, or mysql; overrides config)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string (overrides config)")
	flag.Parse()

	// Initialize glog for the fatal paths below.
	_ = flag.Set("logtostderr", "true")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if configPath == "" {
		configPath = os.Getenv("ASSET_LIBRARY_CONFIG")
	}
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("Failed to load config: %v", err)
	}
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	if databaseType != "" {
		cfg.Database.Type = databaseType
	}
	if databaseDSN != "" {
		cfg.Database.DSN = databaseDSN
	}

	logger.Info("starting asset library server",
		"listen", cfg.Listen,
		"dbType", cfg.Database.Type,
		"scoringRemote", cfg.Scoring.RemoteURL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	gormDB, err := setupDatabase(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}

	assetStore := store.NewAssetStore(gormDB)
	if err := assetStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate asset tables: %v", err)
	}
	masterStore := masters.NewMastersStore(gormDB)
	if err := masterStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate master tables: %v", err)
	}
	auditStore := audit.NewStore(gormDB)
	if err := auditStore.AutoMigrate(); err != nil {
		glog.Fatalf("Failed to migrate audit tables: %v", err)
	}
	go audit.NewRetentionWorker(auditStore, 90, logger).Run(ctx)

	srv := server.NewServer(cfg, assetStore, masterStore,
		server.WithLogger(logger),
		server.WithAuditStore(auditStore),
	)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.MountRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			glog.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}

	logger.Info("asset library server stopped")
}

// setupDatabase opens the configured database.
func setupDatabase(dbType, dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	switch dbType {
	case "sqlite", "":
		if dsn == "" {
			dsn = "file:asset-library.db"
		}
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	case "postgres":
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/professorcathk-art/webinar-landing-generator-sub000/config"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/db"
	"github.com/professorcathk-art/webinar-landing-generator-sub000/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	path := flag.String("path", "file://migrations", "migration source URL")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: "webinar-landing-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	direction := db.MigrateUp
	if *down {
		direction = db.MigrateDown
	}

	logger.Info("Starting database migrations",
		zap.String("database", maskDatabaseURL(cfg.Database.URL)),
		zap.String("direction", string(direction)))

	poolCfg := db.PoolConfig{
		URL:        cfg.Database.URL,
		CACertPath: cfg.Database.CACertPath,
	}
	if err := db.RunMigrations(poolCfg, *path, direction); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides the password of a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}

package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/config"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/database"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/logger"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/server"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/services"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/version"
)

func main() {
	// Setup logging with rotation
	logDir := filepath.Join("data", "logs")
	_ = os.MkdirAll(logDir, 0o755)

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "gwd.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	// Log to both stdout and file
	mw := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(mw)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(cfg.Environment == "development", mw)
	log.Printf("starting %s version %s", version.Name, version.Full())

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// The process must not serve traffic without both fitted artifacts.
	forest, scaler, err := ml.LoadArtifacts(cfg.ModelPath, cfg.ScalerPath)
	if err != nil {
		log.Fatalf("load artifacts: %v", err)
	}

	srv, err := server.New(db, cfg, forest, scaler)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	stats := services.NewStatsService(db)
	if err := stats.Start(); err != nil {
		log.Fatalf("start stats sweep: %v", err)
	}
	defer stats.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// cmd/brasilviral/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	var (
		baseDir         = flag.String("base-dir", ".", "site root directory")
		category        = flag.String("category", "", "generate for a single category")
		count           = flag.Int("count", 0, "articles per category (0 = batch size from config)")
		startAutomation = flag.Bool("start-automation", false, "start the background automation daemon")
		stopAutomation  = flag.Bool("stop-automation", false, "stop the background automation daemon")
		generateIndexes = flag.Bool("generate-indexes", false, "rebuild the JSON feeds and exit")
		cleanup         = flag.Bool("cleanup", false, "remove old pages and exit")
		runScheduler    = flag.Bool("run-scheduler", false, "run the scheduler loop (used by the launcher)")
		statusAddr      = flag.String("status-addr", GetEnvString("STATUS_ADDR", "127.0.0.1:8090"), "status server listen address")
		logLevel        = flag.String("log-level", GetEnvString("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	)
	flag.Parse()

	if err := godotenv.Load(filepath.Join(*baseDir, ".env")); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if err := InitLogger(filepath.Join(*baseDir, PathLogs), ParseLogLevel(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := GetLogger()
	logger.Info("%s v%s starting", AppName, AppVersion)

	switch {
	case *startAutomation:
		exitOn(StartAutomation(*baseDir))
		fmt.Println("Automation daemon started")
		return
	case *stopAutomation:
		exitOn(StopAutomation(*baseDir))
		fmt.Println("Automation daemon stopped")
		return
	}

	cfg, err := LoadConfig(filepath.Join(*baseDir, PathConfig))
	exitOn(err)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pipeline, err := NewPipeline(*baseDir, cfg, rng)
	exitOn(err)

	switch {
	case *generateIndexes:
		exitOn(pipeline.RefreshIndexes())
		logger.Info("Indexes regenerated")
	case *cleanup:
		removed, err := CleanupOldNews(*baseDir, CleanupAfterDays)
		exitOn(err)
		logger.Info("Removed %d old pages", removed)
		exitOn(pipeline.RefreshIndexes())
	case *runScheduler:
		runDaemon(*baseDir, cfg, pipeline, rng, *statusAddr)
	default:
		runOnce(cfg, pipeline, *category, *count)
	}
}

// runOnce is the one-shot CLI path: generate now, then exit.
func runOnce(cfg *Config, pipeline *Pipeline, category string, count int) {
	categories := cfg.Categories
	if category != "" {
		if !IsValidCategory(category) {
			exitOn(NewValidationError("CONFIG_002", fmt.Sprintf("unknown category %q", category)))
		}
		categories = []string{category}
	}
	if count <= 0 {
		count = cfg.BatchSize
	}

	stats, err := pipeline.RunContentGeneration(context.Background(), categories, count)
	exitOn(err)
	fmt.Printf("Generated %d articles, published %d\n", stats.TotalGenerated, stats.TotalPublished)
}

// runDaemon is the long-running path behind the launcher script.
func runDaemon(baseDir string, cfg *Config, pipeline *Pipeline, rng *rand.Rand, statusAddr string) {
	logger := GetLogger()

	if !cfg.Enabled {
		logger.Warning("Automation is disabled in config, exiting")
		return
	}

	exitOn(WritePIDFile(baseDir))
	defer RemovePIDFile(baseDir)

	scheduler := NewScheduler(cfg, pipeline, rng)
	exitOn(scheduler.Start())

	server := NewStatusServer(statusAddr, pipeline)
	server.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Received %s, shutting down", s)

	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warning("Status server shutdown: %v", err)
	}
	logger.Info("Shutdown complete")
}

func exitOn(err error) {
	if err != nil {
		GetLogger().Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

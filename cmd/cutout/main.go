// cmd/cutout/main.go
package main

import (
	"io"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/cutout/internal/app"
	"github.com/bethropolis/cutout/internal/config"
	"github.com/bethropolis/cutout/internal/logger"
)

func main() {
	// --- Flag & config loading ---
	flags := &config.Flags{}
	flags.ParseFlags()

	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger initialization ---
	var logOutput io.Writer = os.Stderr
	var logFile *os.File
	if path := cfg.Logger.LogFilePath; path != "" && path != "-" {
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file %q: %v", path, err)
		}
		defer logFile.Close()
		logOutput = logFile
	} else if path == "" {
		// Logging to stderr would fight the TUI for the terminal.
		logOutput = io.Discard
	}
	logger.Init(cfg.Logger.Level(), logOutput, &cfg.Logger)

	logger.Infof("Starting %s...", config.AppName)
	logger.Debugf("Timeline: %d frames @ %d fps", cfg.Timeline.TotalFrames, cfg.Timeline.FPS)
	if cfg.Editor.AssetCatalog != "" {
		logger.Debugf("Asset catalog: %s", cfg.Editor.AssetCatalog)
	}

	// --- Create and run app ---
	editor, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

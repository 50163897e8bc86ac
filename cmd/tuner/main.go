// Package main is the toon material tuner: the character rendered offscreen
// next to live controls for the enhancer parameters and rig systems.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/config"
	"github.com/Faultbox/toonrig/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== toonrig tuner ===")

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to create tuner", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

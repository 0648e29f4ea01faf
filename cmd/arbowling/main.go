package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"arbowling/internal/config"
	"arbowling/internal/game"
	"arbowling/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (default: ./arbowling.yaml if present)")
	logLevel := flag.String("log-level", "", "log level: trace, debug, info, warn, error (overrides config)")
	flag.Parse()

	// Deployed builds keep their assets next to the binary. Skip this for
	// "go run", which builds into a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			if _, err := os.Stat(filepath.Join(execDir, "assets")); err == nil {
				os.Chdir(execDir)
			}
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := logging.ForFile("info", os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	log := logging.ForFile(cfg.LogLevel, os.Stderr)

	g := game.New(cfg, log)
	if err := g.Run(); err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/qubicscan/contract-registry/internal/config"
	"github.com/qubicscan/contract-registry/internal/ctxlog"
	"github.com/qubicscan/contract-registry/internal/updater"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: search standard locations)")
	dataFile := flag.String("data-file", "", "path to the registry document (overrides config)")
	helperPath := flag.String("js-lib", "", "path to the identity helper library (overrides config)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *helperPath != "" {
		cfg.Identity.HelperPath = *helperPath
	}

	u, err := updater.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := ctxlog.WithLogger(context.Background(), logger)
	if err := u.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

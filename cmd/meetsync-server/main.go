// Package main implements the meetsync JSON service for scoring meeting times.
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
	_ "time/tzdata"

	"github.com/codeGROOVE-dev/meetsync/pkg/config"
)

var (
	port       = flag.String("port", "8080", "Port for web server (or set PORT)")
	configPath = flag.String("config", "", "Config file with catalog additions (or set MEETSYNC_CONFIG)")
	rateLimit  = flag.Int("rate-limit", 60, "Requests per minute per client IP")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("meetsync Server v1.0.0")
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if envPort := os.Getenv("PORT"); envPort != "" && !isFlagSet("port") {
		*port = envPort
	}
	if *configPath == "" {
		*configPath = os.Getenv(config.EnvConfig)
	}

	cfg := &config.Config{}
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath, false); err != nil {
			logger.Error("Failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	cat, err := cfg.Catalog()
	if err != nil {
		logger.Error("Failed to build catalog", "error", err)
		os.Exit(1)
	}

	logger.Info("Server configuration",
		"port", *port,
		"verbose", *verbose,
		"config", *configPath,
		"rate_limit", *rateLimit,
		"catalog_size", len(cat.Options()))

	server := newServer(logger, cat, *rateLimit)

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           server.handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", *port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

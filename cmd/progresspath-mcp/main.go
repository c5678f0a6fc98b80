// progresspath-mcp serves the MCP tool surface over stdio. In local mode it
// opens the data directory directly; with -server it proxies to a running
// ProgressPath instance over the REST API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/MBottaz/progress-path-workouts/internal/config"
	"github.com/MBottaz/progress-path-workouts/internal/mcp"
	"github.com/MBottaz/progress-path-workouts/internal/persist"
	"github.com/MBottaz/progress-path-workouts/internal/store"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	serverURL := flag.String("server", "", "base URL of a running ProgressPath server (remote mode)")
	apiKey := flag.String("api-key", os.Getenv("PROGRESSPATH_API_KEY"), "API key for mutating tools in remote mode")
	flag.Parse()

	// Log to stderr: stdout carries the MCP stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("MCP in remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		if err := persist.RunMigrations(cfg.Storage.DataDir, cfg.Storage.MigrationsDir); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}

		cache, err := persist.OpenCache(cfg.Storage.DataDir)
		if err != nil {
			log.Error("failed to open cache", "error", err)
			os.Exit(1)
		}
		defer cache.Close()

		adapter := persist.NewAdapter(cache, persist.GitHubRemote, log)
		st, err := store.Open(context.Background(), adapter, log)
		if err != nil {
			log.Error("failed to open workout store", "error", err)
			os.Exit(1)
		}
		ds = mcp.NewLocal(st)
		log.Info("MCP in local mode", "data_dir", cfg.Storage.DataDir)
	}

	srv := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MBottaz/progress-path-workouts/internal/config"
	"github.com/MBottaz/progress-path-workouts/internal/persist"
	"github.com/MBottaz/progress-path-workouts/internal/server"
	"github.com/MBottaz/progress-path-workouts/internal/store"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("ProgressPath starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := persist.RunMigrations(cfg.Storage.DataDir, cfg.Storage.MigrationsDir); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	cache, err := persist.OpenCache(cfg.Storage.DataDir)
	if err != nil {
		log.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	adapter := persist.NewAdapter(cache, persist.GitHubRemote, log)

	ctx := context.Background()
	if err := seedSyncSettings(ctx, adapter, cfg.Sync); err != nil {
		log.Warn("seeding sync settings failed", "error", err)
	}
	if adapter.Configured(ctx) {
		log.Info("remote sync configured")
	} else {
		log.Info("remote sync not configured, running local-only")
	}

	st, err := store.Open(ctx, adapter, log)
	if err != nil {
		log.Error("failed to open workout store", "error", err)
		os.Exit(1)
	}

	srv := server.New(st, adapter, cfg.Server.APIKey, log)

	// Start server over tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr)
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// seedSyncSettings writes the config file's sync block into the settings
// store the first time, so a fresh install can start fully configured. Values
// already in the settings store win.
func seedSyncSettings(ctx context.Context, adapter *persist.Adapter, seed config.SyncConfig) error {
	existing, err := adapter.Settings(ctx)
	if err != nil {
		return err
	}
	if existing.Configured() {
		return nil
	}
	if seed.GitHubToken == "" && seed.GitHubOwner == "" && seed.GitHubRepo == "" {
		return nil
	}
	return adapter.SetSettings(ctx, persist.SyncSettings{
		Token: seed.GitHubToken,
		Owner: seed.GitHubOwner,
		Repo:  seed.GitHubRepo,
	})
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hotphrase/config"
	"hotphrase/store"
	"hotphrase/systray"
	"hotphrase/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	configPath, _ := config.Path()
	slog.Info("Configuration loaded", "path", configPath)

	dir, err := config.Dir()
	if err != nil {
		slog.Error("Failed to locate data directory", "error", err)
		os.Exit(1)
	}
	db, err := store.Open(dir)
	if err != nil {
		slog.Error("Failed to open shortcut store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	engine := NewEngine(cfg, db)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Web.Enabled {
		server := web.NewServer(db, cfg, engine, cfg.Web.Port)
		engine.SetDashboard(server)
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("Dashboard server stopped", "error", err)
			}
		}()
	}

	// Editing config.toml by hand re-reads the shortcut registrations.
	if err := config.Watch(ctx, configPath, engine.RequestReload); err != nil {
		slog.Warn("Config watcher unavailable", "error", err)
	}

	engineErr := make(chan error, 1)
	go func() {
		err := engine.Run(ctx)
		engineErr <- err
		if err != nil {
			cancel() // take the tray down with us
		}
	}()

	tray := systray.NewManager(cfg.Web.Port, nil, systray.Controls{
		Reload:    engine.RequestReload,
		SetPaused: engine.SetPaused,
		Paused:    engine.Paused,
	})
	go func() {
		select {
		case <-tray.WaitForQuit():
			cancel()
		case <-ctx.Done():
			tray.Stop()
		}
	}()

	// Blocks until quit; the tray owns the main thread.
	tray.Run()

	if err := <-engineErr; err != nil {
		slog.Error("Engine error", "error", err)
		os.Exit(1)
	}

	slog.Info("hotphrase stopped")
}

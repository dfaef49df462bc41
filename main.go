package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.design/x/hotkey/mainthread"

	"pushmic/internal/config"
	"pushmic/internal/notify"
)

func main() {
	// The hotkey registration needs the process main thread on macOS.
	mainthread.Init(run)
}

func run() {
	configPath := flag.String("config", "", "path to config.toml (default ~/.config/pushmic/config.toml)")
	quiet := flag.Bool("quiet", false, "disable sound cues and desktop notifications")
	flag.Parse()

	log := newLogger()

	path := *configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			log.Error("cannot resolve config path", "error", err)
			os.Exit(1)
		}
		path = defaultPath
	}

	app, err := NewApp(path, *quiet, log, notify.NewNotifier(!*quiet))
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Error("exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PUSHMIC_LOG_LEVEL"))) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// main.go - Entry point for the UrduGPT terminal chat client.
// Loads configuration, opens the local chat database, wires the lifecycle
// controller to the bubbletea program, and runs until interrupted.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"urdugpt/src/app"
	"urdugpt/src/config"
	"urdugpt/src/services/chat"
	"urdugpt/src/services/gemini"
	"urdugpt/src/services/sound"
	"urdugpt/src/services/storage"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	var kv storage.KV
	boltKV, err := storage.OpenBolt(cfg.HistoryPath())
	if err != nil {
		// Degraded mode: the session works but nothing survives a restart.
		logger.Error("open chat database, falling back to in-memory history", "path", cfg.HistoryPath(), "error", err)
		kv = storage.NewMemoryKV()
	} else {
		kv = boltKV
	}
	defer kv.Close()

	historyStore := storage.NewHistoryStore(kv, logger)
	settingsStore := storage.NewSettingsStore(kv, logger)
	settings := settingsStore.Load()

	generator := gemini.New(cfg.APIURL, cfg.APIKey, cfg.Timeout())
	notifier := sound.New(os.Stderr)

	// The program is created after the controller, so the emit closure
	// captures the variable; events only start flowing once the UI submits
	// a message, by which point the program exists.
	var program *tea.Program
	ctrl := chat.NewController(historyStore, generator, notifier, settings, func(e chat.Event) {
		if program != nil {
			program.Send(app.EventMsg{Event: e})
		}
	}, logger)

	model := app.New(cfg, ctrl, historyStore, settingsStore, settings, logger)
	program = tea.NewProgram(model, tea.WithAltScreen())

	setupGracefulShutdown(program, logger)

	logger.Info("starting UrduGPT", "data_dir", cfg.DataDir)
	if _, err := program.Run(); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupGracefulShutdown quits the program cleanly on SIGINT/SIGTERM.
func setupGracefulShutdown(program *tea.Program, logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logger.Info("received shutdown signal")
		program.Quit()
	}()
}

package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"dira-chat-backend/internal/config"
	"dira-chat-backend/internal/server"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLogLevel(cfg.LogLevel),
		TimeFormat: time.Kitchen,
	})))

	s, err := server.NewServer(cfg)
	if err != nil {
		slog.Error("failed to create server", "err", err)
		os.Exit(1)
	}
	defer s.Close()

	addr := ":" + cfg.Port
	slog.Info("dira server listening", "addr", addr)
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
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

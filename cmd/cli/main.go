package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"
)

func initLogger(lvl *slog.LevelVar) {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func main() {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	initLogger(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd(lvl).ExecuteContext(ctx)
	if err != nil {
		slog.Debug("command failed", "error", err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

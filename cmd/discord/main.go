package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/keshon/command-core/internal/command/core"
	"github.com/keshon/command-core/internal/config"
	"github.com/keshon/command-core/internal/discord"
	"github.com/keshon/command-core/internal/middleware"
	"github.com/keshon/command-core/internal/storage"
	v "github.com/keshon/command-core/internal/version"
	"github.com/keshon/command-core/pkg/cmd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting bot", zap.String("app", v.AppName))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := cmd.NewTree(core.Commands()...)
	if err != nil {
		return fmt.Errorf("build command tree: %w", err)
	}

	bot := discord.New(cfg, store, tree, logger)
	bot.Use(
		middleware.WithCommandLogger(store),
		middleware.WithGuildOnly(),
		middleware.WithPermissionCheck(cfg),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("Received signal, shutting down", zap.String("signal", s.String()))
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error("Discord bot error", zap.Error(err))
			return err
		}
	}

	logger.Info("Discord bot exited cleanly")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baikal-tours/signup-bot/internal/bot"
	"github.com/baikal-tours/signup-bot/internal/config"
	"github.com/baikal-tours/signup-bot/internal/health"
	"github.com/baikal-tours/signup-bot/internal/logger"
	"github.com/baikal-tours/signup-bot/internal/metrics"
	"github.com/baikal-tours/signup-bot/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("signup-bot: %v", err)
	}
}

func run() error {
	// .env is optional, real deployments configure the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Profile:     cfg.Logging.Profile,
		DebugSample: cfg.Logging.DebugSample,
	}); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	app := bot.New(cfg, m)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	healthSrv := health.New(health.Options{Port: cfg.HTTP.Port})
	healthErr := make(chan error, 1)
	go func() {
		healthErr <- healthSrv.Run(ctx)
	}()

	runOpts := app.TelegramRunOptions()

	startedAt := time.Now()
	prevStart := runOpts.OnStart
	runOpts.OnStart = func(ctx context.Context, rt telegram.Runtime) error {
		if prevStart != nil {
			if err := prevStart(ctx, rt); err != nil {
				return err
			}
		}
		logger.Info(ctx, "app", "ready",
			slog.Duration("startup_duration", time.Since(startedAt)),
		)
		return nil
	}
	prevStop := runOpts.OnStop
	runOpts.OnStop = func(ctx context.Context, rt telegram.Runtime) error {
		logger.Info(ctx, "app", "shutdown")
		if prevStop != nil {
			return prevStop(ctx, rt)
		}
		return nil
	}

	runErr := telegram.Run(ctx, runOpts)

	// stop the liveness listener alongside the bot
	cancel()
	if err := <-healthErr; err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

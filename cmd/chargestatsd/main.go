package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/chargestats"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/config"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/logger"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/pid"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/source"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/telemetry"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/wireless"
	"github.com/robfig/cron/v3"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		logger.SetLevelFromName(cfg.LogLevel)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write pid file")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove pid file")
		}
	}()

	sink, err := telemetry.NewReporter(telemetry.Config{DBPath: cfg.Database})
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize telemetry sink")
		return
	}

	store := source.NewStore(cfg.Sources)
	gate := chargestats.NewThrottleGate(source.NewClock())
	reporter := chargestats.NewReporter(store, wireless.NewStats(), gate, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if cfg.Once {
		reporter.Drain(ctx, source.Charger)
	} else if err := loop(ctx, reporter); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}

	cleanup(sink)
}

func loop(ctx context.Context, reporter *chargestats.Reporter) error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(fmt.Sprintf("@every %ds", cfg.Interval), func() {
		reporter.Drain(ctx, source.Charger)
	})
	if err != nil {
		return err
	}

	logger.Info().Int("interval", cfg.Interval).Msg("Draining charge stats on schedule")
	scheduler.Start()

	<-ctx.Done()

	// Let a drain in flight finish before shutting down.
	<-scheduler.Stop().Done()

	return nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup(sink telemetry.Reporter) {
	if err := sink.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry sink")
	}
	logger.Info().Msg("Exiting...")
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"goodcents/internal/backend"
	"goodcents/internal/config"
	"goodcents/internal/log"
	"goodcents/internal/metrics"
	"goodcents/internal/services"
)

// App holds what every command needs once the root command has set up
// configuration, storage and content.
type App struct {
	Config  *config.Config
	Rules   config.Rules
	Game    *services.GameService
	Metrics *metrics.Recorder
	Logger  *log.Logger

	out     io.Writer
	prompt  *prompter
	backend *backend.BackendResult
}

func newApp(in io.Reader, out io.Writer) *App {
	return &App{
		out:    out,
		prompt: &prompter{in: bufio.NewReader(in), out: out},
	}
}

// open builds the engine from cfg.
func (a *App) open(ctx context.Context, cfg *config.Config) error {
	logger, err := SetupLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	rules, err := LoadAndValidateConfig(ctx, logger, cfg)
	if err != nil {
		return err
	}
	bundle, err := InitContent(ctx, logger, cfg.ContentDir)
	if err != nil {
		return err
	}
	res, err := InitStore(ctx, logger, cfg)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Rules = rules
	a.Logger = logger
	a.backend = res
	a.Metrics = metrics.New()
	a.Game = services.NewGameService(services.Deps{
		Store:   res.Store,
		Rules:   rules,
		Content: bundle,
		Rand:    services.NewRand(cfg.Seed),
		Metrics: a.Metrics,
	})

	logger.DebugContext(ctx, "Application initialized",
		"backend", cfg.DataBackend,
		"seed", cfg.Seed)
	return nil
}

// Close writes the metrics file and releases the store.
func (a *App) Close(ctx context.Context) error {
	if a.backend == nil {
		return nil
	}
	var errs []error
	if a.Config.MetricsFile != "" {
		if err := a.Metrics.WriteFile(a.Config.MetricsFile); err != nil {
			log.LogError(ctx, "Failed to write metrics file", err, log.ComponentMetrics, log.OpShutdown,
				log.LogFields{"path": a.Config.MetricsFile})
			errs = append(errs, err)
		}
	}
	if a.backend.Cleanup != nil {
		if err := a.backend.Cleanup(); err != nil {
			errs = append(errs, err)
		}
	}
	a.backend = nil
	return errors.Join(errs...)
}

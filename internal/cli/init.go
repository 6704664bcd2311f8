// Package cli provides the goodcents command line and its shared
// initialization: logging, configuration, storage and shutdown handling.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"goodcents/internal/backend"
	"goodcents/internal/config"
	"goodcents/internal/content"
	"goodcents/internal/log"
)

// SetupLogger initializes structured logging at the given level and installs
// it as the default logger. Records go to stderr so command output stays
// readable.
func SetupLogger(level string) (*log.Logger, error) {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	cfg.Component = log.ComponentCLI
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig validates cfg and loads the rules file it names.
func LoadAndValidateConfig(ctx context.Context, logger *log.Logger, cfg *config.Config) (config.Rules, error) {
	if err := cfg.Validate(); err != nil {
		logger.ErrorContext(ctx, "Configuration validation failed", log.FieldError, err)
		return config.Rules{}, err
	}
	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load rules", log.FieldError, err, "path", cfg.RulesFile)
		return config.Rules{}, err
	}
	return rules, nil
}

// InitStore opens the configured storage backend.
func InitStore(ctx context.Context, logger *log.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize storage", log.FieldError, err, "backend", cfg.DataBackend)
		return nil, err
	}
	return res, nil
}

// InitContent loads the event and lesson bundle from dir, or the built-in
// bundle when dir is empty.
func InitContent(ctx context.Context, logger *log.Logger, dir string) (*content.Bundle, error) {
	bundle, err := content.LoadDir(ctx, dir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load content", log.FieldError, err, "dir", dir)
		return nil, fmt.Errorf("load content: %w", err)
	}
	return bundle, nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM. The
// stop function releases the signal handler.
func GracefulShutdown(ctx context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/elemgen/internal/config"
	"github.com/alexisbeaulieu97/elemgen/internal/engine"
	"github.com/alexisbeaulieu97/elemgen/internal/logger"
)

func (f *rootFlags) validate() error {
	if _, err := logger.ParseFormat(f.logFormat); err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}
	return nil
}

func (f *rootFlags) logger(w io.Writer) (*logger.Logger, error) {
	format, err := logger.ParseFormat(f.logFormat)
	if err != nil {
		return nil, err
	}
	level := "info"
	if f.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{
		Level:   level,
		Format:  format,
		NoColor: f.noColor,
		Writer:  w,
	})
}

// controller resolves configuration and logging for a command invocation.
func (f *rootFlags) controller(cmd *cobra.Command, operation string) (*engine.Controller, *config.Config, error) {
	log, err := f.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, newCommandError(operation, "creating logger", err, "Check the --log-format value.")
	}

	cfg, err := config.Resolve(config.ResolveOptions{
		ConfigPath: strings.TrimSpace(f.configPath),
		Root:       strings.TrimSpace(f.root),
	})
	if err != nil {
		return nil, nil, newCommandError(operation, "loading configuration", err, "Fix the configuration file or pass --config with a valid path.")
	}

	log.WithFields(logger.Fields{
		"config": valueOrFallback(cfg.Source, "(defaults)"),
		"root":   cfg.SourceRoot(),
	}).Debug("configuration resolved")

	return engine.NewController(cfg, log), cfg, nil
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/phrazzld/entry-compat/internal/compat"
	"github.com/phrazzld/entry-compat/internal/config"
	"github.com/phrazzld/entry-compat/internal/platform/logger"
	"github.com/phrazzld/entry-compat/internal/scheme"
	"github.com/phrazzld/entry-compat/internal/service"
	"github.com/spf13/cobra"
)

// application holds the components shared by every subcommand once
// configuration is loaded.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *scheme.Registry
	service  service.EntryService
}

// rootFlags are the persistent flags that override loaded configuration.
type rootFlags struct {
	configFile      string
	family          string
	compatType      string
	correctPeroxide bool
	aqueous         bool
	tablesDir       string
	logLevel        string
}

// initializeApp loads configuration, applies flag overrides and sets up
// logging and the scheme registry.
func initializeApp(cmd *cobra.Command, flags *rootFlags) (*application, error) {
	cfg, err := config.LoadFile(flags.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("family") {
		family, err := scheme.ParseFamily(flags.family)
		if err != nil {
			return nil, err
		}
		cfg.Scheme.Family = string(family)
	}
	if changed("compat-type") {
		cfg.Scheme.CompatType = flags.compatType
	}
	if changed("correct-peroxide") {
		cfg.Scheme.CorrectPeroxide = flags.correctPeroxide
	}
	if changed("aqueous") {
		cfg.Scheme.Aqueous = flags.aqueous
	}
	if changed("tables-dir") {
		cfg.Scheme.TablesDir = flags.tablesDir
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.SetupWithWriter(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	var tables fs.FS
	if cfg.Scheme.TablesDir != "" {
		tables = os.DirFS(cfg.Scheme.TablesDir)
	}

	log.Debug("configuration loaded",
		"family", cfg.Scheme.Family,
		"compat_type", cfg.Scheme.CompatType,
		"correct_peroxide", cfg.Scheme.CorrectPeroxide,
		"aqueous", cfg.Scheme.Aqueous,
		"tables_dir", cfg.Scheme.TablesDir)

	return &application{
		cfg:      cfg,
		logger:   log,
		registry: scheme.NewRegistry(tables, log),
		service:  service.NewEntryService(log),
	}, nil
}

// options converts the scheme configuration into registry options.
func (a *application) options() scheme.Options {
	return scheme.Options{
		Family:          scheme.Family(a.cfg.Scheme.Family),
		CompatType:      compat.CompatType(a.cfg.Scheme.CompatType),
		CorrectPeroxide: a.cfg.Scheme.CorrectPeroxide,
		Aqueous:         a.cfg.Scheme.Aqueous,
	}
}

// scheme returns the configured compatibility scheme.
func (a *application) scheme() (*compat.Compatibility, error) {
	c, err := a.registry.Get(a.options())
	if err != nil {
		return nil, fmt.Errorf("failed to build scheme %s: %w", a.options().Name(), err)
	}
	return c, nil
}

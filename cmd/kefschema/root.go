package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kefschema"
	"github.com/aretw0/kefschema/internal/config"
	"github.com/aretw0/kefschema/internal/logging"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kefschema",
	Short: "kefschema documents the custom services of KEF wireless speakers",
	Long: `kefschema loads the KEF speaker service descriptor, checks it and serves it
to the platform's UI and dispatch layer over HTTP or MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "kefschema.yaml", "Config file (optional)")
	rootCmd.PersistentFlags().String("schema", "", "Descriptor file (default: built-in catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// app is the state shared by subcommands: config, logger and loaded registry.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *registry.Registry
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("schema") {
		cfg.Schema.Path, _ = cmd.Flags().GetString("schema")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, nil
}

// setup loads config and registry. metrics may be nil.
func setup(cmd *cobra.Command, metrics *observability.Metrics) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithFormat(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	reg, err := kefschema.Open(cmd.Context(), cfg.Schema.Path,
		registry.WithLogger(logger),
		registry.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, registry: reg}, nil
}

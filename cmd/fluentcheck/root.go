package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reoring/fluentcheck/i18n"
	"github.com/reoring/fluentcheck/internal/config"
)

type rootOptions struct {
	configPath string
	cfg        *config.Config
	logger     *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "fluentcheck",
		Short: "Validate JSON, YAML and TOML documents against JSON Schema",
		Long: `fluentcheck compiles a JSON Schema document and checks data files against it.

Each failing document is reported with one line per issue:
  [path] message <value>

Settings are read from .fluentcheck.yaml (or --config) and FLUENTCHECK_*
environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = newLogger(cfg.LogLevel)
			i18n.SetLanguage(cfg.Language)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .fluentcheck.yaml)")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "fluentcheck",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", level)
		lvl = log.WarnLevel
	}
	logger.SetLevel(lvl)
	return logger
}

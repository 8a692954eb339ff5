package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/scriptkit/scriptkit/cmd/scriptkit/commands"
	"github.com/scriptkit/scriptkit/cmd/scriptkit/opts"
	"github.com/scriptkit/scriptkit/pkg/config"
	"github.com/scriptkit/scriptkit/pkg/status"
)

var (
	// Flags
	configFile string
	debug      bool
)

// defaultConfigNames are probed in the working directory when --config is
// not given. A missing config is not an error; flags cover everything.
var defaultConfigNames = []string{
	".scriptkit.yaml",
	".scriptkit.yml",
	".scriptkit.json",
	".scriptkit.hcl",
	".scriptkit",
}

// NewRootCmd creates the scriptkit root command
func NewRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "scriptkit",
		Short: "Everyday batch utilities: rename files, fetch API data, mail reports",
		Long: `scriptkit bundles three small utilities behind one binary:

  rename  batch-rename files from composable rules (dry run by default)
  fetch   pull records from public APIs and export them as JSON or CSV
  report  render fetched records as an HTML report and mail or save it`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ro.Config = cfg
			ro.Printer = status.NewPrinter(cmd.OutOrStdout(), *zerolog.Ctx(cmd.Context()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: probe .scriptkit.{yaml,yml,json,hcl})")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(
		commands.NewRenameCmd(ro),
		commands.NewFetchCmd(ro),
		commands.NewReportCmd(ro),
	)

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}

// loadConfig loads the explicit config file, or probes the defaults. No
// config at all yields an empty one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()

	if configFile != "" {
		cfg, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	for _, name := range defaultConfigNames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		cfg, err := config.Load(ctx, name)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	return &config.Config{}, nil
}

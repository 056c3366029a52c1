package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/livefolio/internal/config"
	"github.com/gabrielmiguelok/livefolio/pkg/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Live portfolio page served over a WebSocket",
	Long: `folio serves a single-page portfolio whose view state (project tabs,
detail dialog, theme, scroll position, section reveal and contact form)
lives in a server-side component. The browser forwards events and applies
the diffs the server pushes back.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section and makes it
// the default.
func newLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logging.SetDefault(logger)
	return logger, nil
}

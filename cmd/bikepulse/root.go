package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bikepulse/internal/config"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	cfgFile  string
	dataPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bikepulse",
		Short: "Bike rental dashboard over the daily rentals dataset",
		Long: `bikepulse loads the daily bike rentals dataset (CSV, XLSX or SQLite) and
serves an interactive dashboard of rentals by day, user type, season, month,
weather and temperature/humidity buckets for a selected date range.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./bikepulse.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "dataset file, overrides dataset.path")

	cmd.AddCommand(
		newServeCmd(opts),
		newSummaryCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// loadConfig loads the configuration and applies the persistent flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if o.dataPath != "" {
		cfg.Dataset.Path = o.dataPath
	}
	return cfg, nil
}

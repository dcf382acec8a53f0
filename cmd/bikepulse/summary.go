package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bikepulse/internal/config"
	"bikepulse/internal/infrastructure"
	"bikepulse/internal/presentation"
	"bikepulse/internal/services"
	api "bikepulse/pkg/contracts/api/v1"
)

type summaryOptions struct {
	start   string
	end     string
	summary string
	daily   bool
	json    bool
}

func newSummaryCmd(root *rootOptions) *cobra.Command {
	opts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard for a date range",
		Long: `Computes the dashboard for the selected range and prints it as text, or as
JSON with --json. --summary prints a single summary as JSON.`,
		Example: `  bikepulse summary --data data/days_df.csv --start 2011-06-01 --end 2011-08-31
  bikepulse summary --summary seasons --start 2012-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return runSummary(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.start, "start", "", "first day, YYYY-MM-DD (default: dataset start)")
	cmd.Flags().StringVar(&opts.end, "end", "", "last day, YYYY-MM-DD (default: dataset end)")
	cmd.Flags().StringVar(&opts.summary, "summary", "", "print one summary: metrics, daily, user-types, years, seasons, months, weather, buckets, temperature-buckets")
	cmd.Flags().BoolVar(&opts.daily, "daily", false, "include one line per day in the text output")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the full dashboard as JSON")

	return cmd
}

func runSummary(cmd *cobra.Command, cfg *config.Config, opts *summaryOptions) error {
	ctx := infrastructure.EnsureTraceID(cmd.Context())

	// Logs go to stderr so stdout stays parseable
	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	store := services.NewDatasetStore(cfg.Dataset, logger)
	svc := services.NewDashboardService(store, cfg.Dataset, logger)
	req := api.DashboardRequest{Start: opts.start, End: opts.end}
	out := cmd.OutOrStdout()

	if opts.summary != "" {
		rng, data, err := svc.Summary(ctx, api.SummaryRequest{DashboardRequest: req, Summary: opts.summary})
		if err != nil {
			return err
		}
		return writeJSON(out, api.NewSummaryResponse(opts.summary, rng, data))
	}

	dash, err := svc.Dashboard(ctx, req)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(out, api.DashboardResponse{Status: "success", Data: dash})
	}
	return presentation.RenderText(out, dash, presentation.TextOptions{Daily: opts.daily})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

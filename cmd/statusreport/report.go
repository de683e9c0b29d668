package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arunsingh/query-tool-statuspage/internal/aggregate"
	"github.com/arunsingh/query-tool-statuspage/internal/config"
	"github.com/arunsingh/query-tool-statuspage/internal/fetch"
	"github.com/arunsingh/query-tool-statuspage/internal/poller"
	"github.com/arunsingh/query-tool-statuspage/internal/report"
)

// newLogger creates a JSON logger for CLI use, tagged with a run
// correlation ID so one run's diagnostics can be grepped out of a shared
// stderr stream.
func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logger.With("run_id", uuid.NewString())
}

// runReport executes one full report run: load config, read the server
// list, fan out the fetches, aggregate, and write both report forms.
//
// Per-endpoint failures are logged inside the poller and do not surface
// here; only configuration and report-writing problems return an error
// (and therefore a non-zero exit).
func runReport(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	servers, err := config.ReadServerList(args[0])
	if err != nil {
		return err
	}

	logger.Info("starting report run",
		"servers", len(servers),
		"max_concurrency", cfg.MaxConcurrency,
		"timeout", cfg.Timeout().String(),
		"output_file", cfg.OutputFile,
	)

	client := fetch.NewClient(cfg.Timeout())
	defer client.Close()

	agg := aggregate.New()
	p := poller.New(client, agg, cfg.MaxConcurrency, logger)
	p.Run(context.Background(), servers)

	results := agg.Results()
	logger.Info("report run complete", "groups", len(results))

	writer := report.NewWriter(cmd.OutOrStdout(), cfg.OutputFile)
	return writer.Write(results)
}

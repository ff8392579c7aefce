package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/alerts"
	"github.com/dennisdiepolder/monti/callstats/internal/chart"
	"github.com/dennisdiepolder/monti/callstats/internal/config"
	"github.com/dennisdiepolder/monti/callstats/internal/export"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/report"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

func runReport(cmd *cobra.Command, f *flags, args []string) error {
	cfg, logger, err := setup(cmd, f, args)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logger.With().Str("run_id", runID).Logger()
	metrics.Get().Reset()

	logger.Info().
		Str("north_csv", cfg.NorthCSV).
		Str("south_csv", cfg.SouthCSV).
		Str("output_dir", cfg.OutputDir).
		Float64("sl_threshold_secs", cfg.SLThresholdSecs).
		Str("export_mode", cfg.ExportMode).
		Msg("starting report")

	datasets, err := loadBranches(cfg, logger)
	if err != nil {
		return err
	}

	summary := aggregator.Summarize(datasets, aggregator.Options{
		ServiceLevelThresholdSecs: cfg.SLThresholdSecs,
		RunID:                     runID,
		GeneratedAt:               time.Now().UTC(),
	})
	alerts.CheckSummary(&summary, alerts.Thresholds{
		AbandonMin:         cfg.AbandonMin,
		AbandonMax:         cfg.AbandonMax,
		ServiceLevelTarget: cfg.SLTargetFraction(),
	})

	if err := report.New(cmd.OutOrStdout(), logger).Write(summary, cfg.ReportFormat); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Charts {
		if _, err := chart.NewRenderer(cfg.OutputDir, logger).RenderAll(summary); err != nil {
			return err
		}
	}

	exporter, err := export.New(export.Mode(cfg.ExportMode), cfg.OutputDir, logger)
	if err != nil {
		return err
	}
	if _, err := exporter.Export(summary, datasets); err != nil {
		return err
	}

	metrics.Get().Log(logger)
	return nil
}

// loadBranches loads the North and South call logs. A branch without records
// is reported and kept so its KPIs render as N/A.
func loadBranches(cfg *config.Config, logger zerolog.Logger) ([]*types.Dataset, error) {
	l := loader.New(logger)

	sources := []struct{ name, path string }{
		{types.BranchNorth, cfg.NorthCSV},
		{types.BranchSouth, cfg.SouthCSV},
	}

	datasets := make([]*types.Dataset, 0, len(sources))
	for _, src := range sources {
		ds, err := l.Load(src.name, src.path)
		if err != nil {
			return nil, err
		}

		var empty *loader.EmptyInputError
		if err := loader.RequireRecords(ds); errors.As(err, &empty) {
			logger.Warn().
				Str("branch", empty.Name).
				Str("path", empty.Path).
				Msg("no records loaded, KPIs will be N/A")
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

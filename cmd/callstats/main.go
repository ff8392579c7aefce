package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/callstats/internal/config"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
)

// flags holds command line overrides. Only flags the user set are applied.
type flags struct {
	logLevel    string
	outputDir   string
	north       string
	south       string
	format      string
	exportMode  string
	noCharts    bool
	slThreshold float64
	slTarget    float64
	abandonMin  float64
	abandonMax  float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var perr *loader.ParseError
		if errors.As(err, &perr) {
			log.Error().
				Str("path", perr.Path).
				Int("line", perr.Line).
				Str("column", perr.Column).
				Str("value", perr.Value).
				Err(perr.Err).
				Msg("failed to parse call log")
		} else {
			log.Error().Err(err).Msg("run failed")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "callstats [north.csv [south.csv]]",
		Short: "Call center statistics for the North and South branches",
		Long: `callstats loads the call logs of the North and South branches, computes
per-branch and company KPIs (abandonment rate, service level, average speed of
answer, time block volumes) and renders them as tables, charts and exports.

Run without a subcommand to produce the report.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, f, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.logLevel, "log-level", "", "Log level (LOG_LEVEL)")
	pf.StringVarP(&f.outputDir, "output-dir", "o", "", "Directory for charts and exports (OUTPUT_DIR)")
	pf.StringVar(&f.north, "north", "", "North branch CSV (NORTH_CSV)")
	pf.StringVar(&f.south, "south", "", "South branch CSV (SOUTH_CSV)")
	pf.StringVarP(&f.format, "format", "f", "", "Output format: text, json or yaml (REPORT_FORMAT)")

	addReportFlags(root, f)

	reportCmd := &cobra.Command{
		Use:   "report [north.csv [south.csv]]",
		Short: "Print branch and company KPIs, render charts and write exports",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, f, args)
		},
	}
	addReportFlags(reportCmd, f)

	root.AddCommand(reportCmd)
	root.AddCommand(newProfileCmd(f))
	root.AddCommand(newGenerateCmd(f))
	root.AddCommand(newCleanCmd(f))
	return root
}

func addReportFlags(cmd *cobra.Command, f *flags) {
	fs := cmd.Flags()
	fs.StringVar(&f.exportMode, "export", "", "Export mode: none, xlsx, csv or all (EXPORT_MODE)")
	fs.BoolVar(&f.noCharts, "no-charts", false, "Skip chart rendering (CHARTS=false)")
	fs.Float64Var(&f.slThreshold, "sl-threshold", 0, "Service level answer threshold in seconds (SL_THRESHOLD_SECS)")
	fs.Float64Var(&f.slTarget, "sl-target", 0, "Service level target in percent (SL_TARGET)")
	fs.Float64Var(&f.abandonMin, "abandon-min", 0, "Lower bound of the abandonment band (ABANDON_MIN)")
	fs.Float64Var(&f.abandonMax, "abandon-max", 0, "Upper bound of the abandonment band (ABANDON_MAX)")
}

// setup loads the configuration, applies flag overrides and configures the
// global logger
func setup(cmd *cobra.Command, f *flags, args []string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlags(cmd, f, cfg)
	if len(args) > 0 {
		cfg.NorthCSV = args[0]
	}
	if len(args) > 1 {
		cfg.SouthCSV = args[1]
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return cfg, logger, nil
}

func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("north") {
		cfg.NorthCSV = f.north
	}
	if changed("south") {
		cfg.SouthCSV = f.south
	}
	if changed("format") {
		cfg.ReportFormat = f.format
	}
	if changed("export") {
		cfg.ExportMode = f.exportMode
	}
	if changed("no-charts") {
		cfg.Charts = !f.noCharts
	}
	if changed("sl-threshold") {
		cfg.SLThresholdSecs = f.slThreshold
	}
	if changed("sl-target") {
		cfg.SLTarget = f.slTarget
	}
	if changed("abandon-min") {
		cfg.AbandonMin = f.abandonMin
	}
	if changed("abandon-max") {
		cfg.AbandonMax = f.abandonMax
	}
}

// newLogger configures the global zerolog logger the way every command uses it
func newLogger(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("invalid log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return log.Logger
}

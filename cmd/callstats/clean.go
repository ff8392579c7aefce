package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/callstats/internal/export"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
)

func newCleanCmd(f *flags) *cobra.Command {
	var (
		branch string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "clean <input.csv>",
		Short: "Rewrite a call log with canonical Sale, Abandoned and Lost Call values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, f, nil)
			if err != nil {
				return err
			}

			ds, err := loader.New(logger).Load(branch, args[0])
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(cfg.OutputDir, export.CleanedFileName(branch))
			}
			if err := loader.WriteFile(path, ds, loader.WriteOptions{Canonical: true}); err != nil {
				return err
			}
			metrics.Get().RecordExportWritten()

			logger.Info().
				Str("path", path).
				Int("records", ds.Len()).
				Int("normalized", ds.NormalizedCount()).
				Msg("call log cleaned")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "North", "Branch name for rows without a Branch column")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: <output-dir>/<branch>_clean.csv)")
	return cmd
}

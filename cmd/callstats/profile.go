package main

import (
	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/callstats/internal/profile"
	"github.com/dennisdiepolder/monti/callstats/internal/report"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

func newProfileCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [north.csv [south.csv]]",
		Short: "Describe the shape, column types and missing values of each call log",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, f, args)
			if err != nil {
				return err
			}

			p := profile.New(logger)
			var profiles []*profile.Profile
			for _, src := range []struct{ name, path string }{
				{types.BranchNorth, cfg.NorthCSV},
				{types.BranchSouth, cfg.SouthCSV},
			} {
				prof, err := p.ProfileFile(src.name, src.path)
				if err != nil {
					return err
				}
				profiles = append(profiles, prof)
			}

			return report.WriteProfiles(cmd.OutOrStdout(), profiles, cfg.ReportFormat)
		},
	}
}

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dennisdiepolder/monti/callstats/internal/callgen"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

func newGenerateCmd(f *flags) *cobra.Command {
	var (
		branch  string
		records int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic North and South call logs into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, f, nil)
			if err != nil {
				return err
			}

			names := []string{types.BranchNorth, types.BranchSouth}
			if branch != "all" {
				names = []string{branch}
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			g := callgen.NewGenerator(seed, logger)
			for _, name := range names {
				p, err := callgen.Profile(name)
				if err != nil {
					return err
				}
				if records > 0 {
					p.Records = records
				}

				ds, err := g.Generate(p)
				if err != nil {
					return err
				}

				path := filepath.Join(cfg.OutputDir, name+"CallCenter.csv")
				if err := loader.WriteFile(path, ds, loader.WriteOptions{}); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			logger.Info().Int64("seed", seed).Strs("branches", names).Msg("call logs generated")
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "all", "Branch to generate: North, South or all")
	cmd.Flags().IntVar(&records, "records", 0, "Records per branch (default: the branch's usual volume)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (default: time based)")
	return cmd
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ik5/samplechain/config"
	"github.com/ik5/samplechain/planner"
)

func newPlanCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <dir>",
		Short: "Show how the samples in a directory would be chained",
		Long:  `Scan a directory and print the planned chains without decoding or writing any audio.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if err := isDir(root); err != nil {
				return err
			}

			p, err := c.pipeline(cmd, root)
			if err != nil {
				return err
			}
			files, err := p.Discover(root)
			if err != nil {
				return err
			}

			plan := p.Plan(files)
			if c.format != "text" {
				return printStructured(cmd.OutOrStdout(), c.format, plan)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

func printPlan(w io.Writer, plan *planner.Plan) {
	fmt.Fprintf(w, "%d chains, %d files\n", len(plan.Chains), plan.Files())
	for _, ch := range plan.Chains {
		md := ch.Metadata
		fmt.Fprintf(w, "\n%s (%s, %d files, ~%.2fs, ~%.2f MB)\n",
			ch.Name, ch.Kind, md.SampleCount, md.EstimatedDurationSeconds, md.EstimatedFileSizeMB)
		if md.HihatMetadata != nil {
			fmt.Fprintf(w, "  closed: %d, open: %d, hats: %v\n", md.ClosedCount, md.OpenCount, md.HatNames)
		}
		for i, f := range ch.Files {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, f.Path)
		}
	}
}

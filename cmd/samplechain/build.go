// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ik5/samplechain"
	"github.com/ik5/samplechain/config"
)

func newBuildCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <dir>",
		Short: "Build and export the sample chains of a directory",
		Long: `Scan a directory, plan the chains, build them in parallel and write one WAV
file per chain, plus a JSON sidecar unless --metadata=false.`,
		Args: cobra.ExactArgs(1),
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := p.Run(ctx, files)
			if report != nil {
				if perr := printReport(cmd.OutOrStdout(), c.format, report); perr != nil {
					return perr
				}
			}
			if err != nil {
				return err
			}
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d chains failed: %w", report.Failed, len(report.Chains), report.Err())
			}
			return nil
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

func printReport(w io.Writer, format string, report *samplechain.Report) error {
	if format != "text" {
		return printStructured(w, format, report)
	}

	for _, ch := range report.Chains {
		if ch.Err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", ch.Name, ch.Err)
			continue
		}
		fmt.Fprintf(w, "ok   %s -> %s (%d x %d frames, %s)\n",
			ch.Name, ch.Result.AudioPath, ch.SampleCount, ch.SampleLength, ch.Result.Subtype)
		for _, s := range ch.Skipped {
			fmt.Fprintf(w, "     skipped %s\n", s)
		}
	}
	fmt.Fprintf(w, "%d built, %d failed\n", report.Built, report.Failed)
	return nil
}

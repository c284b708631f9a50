// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/samplechain/loader"
)

func newValidateCmd(c *cli) *cobra.Command {
	var noMP3 bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check audio files for problems",
		Long:  `Decode each file and report its format, duration, warnings and errors.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []loader.Option
			if noMP3 {
				opts = append(opts, loader.WithoutMP3())
			}
			l := loader.New(opts...)

			reports := make([]loader.ValidationReport, len(args))
			invalid := 0
			for i, path := range args {
				reports[i] = l.Validate(path)
				if !reports[i].IsValid {
					invalid++
				}
			}

			if c.format != "text" {
				if err := printStructured(cmd.OutOrStdout(), c.format, reports); err != nil {
					return err
				}
			} else {
				printValidation(cmd.OutOrStdout(), reports)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d files are invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noMP3, "disable-mp3", false, "do not load MP3 files")
	return cmd
}

func printValidation(w io.Writer, reports []loader.ValidationReport) {
	for _, r := range reports {
		status := "ok"
		if !r.IsValid {
			status = "INVALID"
		}
		fmt.Fprintf(w, "%-7s %s", status, r.Path)
		if r.Format.SampleRate > 0 {
			fmt.Fprintf(w, " (%s, %.3fs)", r.Format, r.Duration)
		}
		fmt.Fprintln(w)
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "        warning: %s\n", msg)
		}
		if errs := r.ErrorStrings(); len(errs) > 0 {
			fmt.Fprintf(w, "        error: %s\n", strings.Join(errs, "; "))
		}
	}
}

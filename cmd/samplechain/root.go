// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ik5/samplechain"
	"github.com/ik5/samplechain/config"
)

// cli holds the persistent flag values shared by all commands.
type cli struct {
	cfgFile      string
	verboseLevel int
	format       string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "samplechain",
		Short: "Build sample chains for hardware samplers",
		Long: `samplechain turns folders of one-shot samples into sample chains: single
WAV files of equally long slots with a power-of-two slot count, ready to be
sliced by a hardware sampler.

Hi-hats are grouped by name with closed takes before open ones; every other
sample is grouped by its directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), c.verboseLevel)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./samplechain.yaml or $HOME/.config/samplechain.yaml)")
	root.PersistentFlags().IntVarP(&c.verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug")
	root.PersistentFlags().StringVarP(&c.format, "format", "f", "text", "output format: text, json or yaml")

	root.AddCommand(
		newPlanCmd(c),
		newBuildCmd(c),
		newValidateCmd(c),
		newConfigCmd(c),
	)
	return root
}

// setupLogging configures slog based on the verbose level
func setupLogging(w io.Writer, level int) {
	slogLevel := slog.LevelInfo
	if level >= 1 {
		slogLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}

// pipeline loads the configuration, with flags from cmd, and builds a
// pipeline rooted at root.
func (c *cli) pipeline(cmd *cobra.Command, root string) (*samplechain.Pipeline, error) {
	cfg, err := config.Load(c.cfgFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return samplechain.New(cfg, samplechain.WithRoot(root), samplechain.WithLogger(slog.Default()))
}

// printStructured writes v as JSON or YAML. YAML goes through JSON first so
// both formats share the json field names.
func printStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case "yaml":
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("error marshaling yaml: %w", err)
		}
		_, err = w.Write(out)
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func isDir(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

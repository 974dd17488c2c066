// Package cli provides the cubeface command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/cubeface/internal/config"
	"github.com/ironsheep/cubeface/internal/cube"
	"github.com/ironsheep/cubeface/internal/version"
)

// LogLevelEnv names the environment variable that sets the log level.
const LogLevelEnv = "CUBEFACE_LOG_LEVEL"

type rootOptions struct {
	configPath string
	verbose    bool
	workers    int
	pretty     bool
}

// NewRootCmd builds the cubeface command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cubeface [flags] <image>...",
		Short: "Detect the facelet colors of a Rubik's Cube face",
		Long: `cubeface reads photographs of single Rubik's Cube faces and prints the
3x3 grid of facelet colors found in each one.

Results are written to stdout as one JSON object keyed "Image 1", "Image 2",
... in argument order. An image that cannot be analyzed gets an
{"error": "..."} entry instead of a grid; the remaining images still run.`,
		Args:         cobra.ArbitraryArgs,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding enhancement and reference colors")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 1, "number of images analyzed concurrently")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runDetect(cmd *cobra.Command, opts *rootOptions, paths []string) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	if len(paths) == 0 {
		doc, err := cube.EmptyInputJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(doc))
		return cube.ErrEmptyInput
	}

	detector, err := newDetector(opts, logger)
	if err != nil {
		return err
	}

	runner := cube.NewRunner(detector, cube.WithLogger(logger), cube.WithWorkers(opts.workers))
	results, err := runner.Run(paths)
	if err != nil {
		return err
	}

	doc, err := encodeResults(results, opts.pretty)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Fprintln(out, string(doc))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Debug("batch complete", "images", len(results), "failed", failed)
	return nil
}

func encodeResults(results cube.Results, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(results, "", "  ")
	}
	return json.Marshal(results)
}

// newDetector loads the optional config file and builds a detector from it.
func newDetector(opts *rootOptions, logger hclog.Logger) (*cube.Detector, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.configPath != "" {
		logger.Debug("loaded config", "path", opts.configPath)
	}
	return cube.NewDetector(cfg.Settings(), cube.WithLogger(logger)), nil
}

// newLogger writes to w because stdout carries the JSON results. The level
// comes from CUBEFACE_LOG_LEVEL unless --verbose forces debug.
func newLogger(w io.Writer, verbose bool) hclog.Logger {
	level := hclog.Info
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		if l := hclog.LevelFromString(env); l != hclog.NoLevel {
			level = l
		}
	}
	if verbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "cubeface",
		Output: w,
		Level:  level,
	})
}

// Package cli implements the graphql-bench command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/graphql-bench/internal/bench/attack"
	"github.com/wesleyorama2/graphql-bench/internal/config"
)

var version = "0.1.0"

// Process exit codes.
const (
	ExitClean = 0
	ExitFatal = 1
	ExitDirty = 2
)

// ErrDirtyRun is returned after results were written when at least one sanity
// check failed.
var ErrDirtyRun = errors.New("one or more sanity checks failed")

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewRootCmd creates the graphql-bench command.
func NewRootCmd(streams Streams) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:     "graphql-bench",
		Short:   "Load test GraphQL endpoints and compare their latency",
		Version: version,
		Long: `graphql-bench runs the benchmarks of a spec against every candidate GraphQL
endpoint, sweeping the configured request rates with vegeta, and writes the
reports of every candidate and rate to a single JSON file.

Each rate point is preceded by a sanity request; a failing candidate is not
attacked at that rate and the run exits with status 2 once results are written.

Examples:
  graphql-bench --spec bench.yaml
  graphql-bench --spec bench.yaml --bench smoke --candidate v1 --token $TOKEN
  cat bench.yaml | graphql-bench --workspace ./ws --summary`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, v, streams)
		},
	}

	flags := cmd.Flags()
	flags.StringP("spec", "s", "-", "Spec file, or - for standard input")
	flags.StringP("bench", "b", "", "Run only the named benchmark")
	flags.StringP("candidate", "c", "", "Run only the named candidate")
	flags.String("config", "", "Settings file (YAML, JSON or TOML)")
	flags.StringP(config.KeyToken, "t", config.DefaultToken, "Bearer token sent with every non-introspection request")
	flags.StringP(config.KeyWorkspace, "w", config.DefaultWorkspace, "Directory holding query documents and request bodies")
	flags.StringP(config.KeyOutput, "o", "", "Results file (default <workspace>/"+config.ResultsFile+")")
	flags.String(config.KeyAttacker, attack.DefaultBinary, "Load generator binary")
	flags.Duration(config.KeySanityTimeout, config.DefaultSanityTimeout, "Timeout of each sanity request")
	flags.Bool(config.KeyNoColor, false, "Disable colored output")
	flags.BoolP(config.KeyVerbose, "v", false, "Log diagnostics to stderr")
	flags.Bool(config.KeySummary, false, "Print a summary table to stdout after the run")

	for _, key := range []string{
		config.KeyToken, config.KeyWorkspace, config.KeyOutput, config.KeyAttacker,
		config.KeySanityTimeout, config.KeyNoColor, config.KeyVerbose, config.KeySummary,
	} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", key, err))
		}
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	return cmd
}

// ExitCode maps the error returned by the command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitClean
	case errors.Is(err, ErrDirtyRun):
		return ExitDirty
	default:
		return ExitFatal
	}
}

// Execute runs the command with the process streams and returns the exit code.
func Execute(ctx context.Context) int {
	return run(ctx, os.Args[1:], Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

func run(ctx context.Context, args []string, streams Streams) int {
	cmd := NewRootCmd(streams)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(streams.Err, err)
	}
	return ExitCode(err)
}

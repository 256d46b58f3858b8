package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wesleyorama2/graphql-bench/internal/bench/attack"
	"github.com/wesleyorama2/graphql-bench/internal/bench/driver"
	"github.com/wesleyorama2/graphql-bench/internal/bench/query"
	"github.com/wesleyorama2/graphql-bench/internal/bench/result"
	"github.com/wesleyorama2/graphql-bench/internal/bench/sanity"
	"github.com/wesleyorama2/graphql-bench/internal/bench/spec"
	"github.com/wesleyorama2/graphql-bench/internal/config"
	"github.com/wesleyorama2/graphql-bench/internal/http"
	"github.com/wesleyorama2/graphql-bench/internal/output"
)

// runBench loads the spec, runs the selected benchmarks and writes the results.
// Nothing is written when the spec is invalid, the benchmark is unknown or the
// run is interrupted.
func runBench(cmd *cobra.Command, v *viper.Viper, streams Streams) error {
	specPath, _ := cmd.Flags().GetString("spec")
	benchName, _ := cmd.Flags().GetString("bench")
	candidate, _ := cmd.Flags().GetString("candidate")
	configFile, _ := cmd.Flags().GetString("config")

	settings, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	logger := newLogger(settings.Verbose, streams.Err)
	defer logger.Sync() //nolint:errcheck

	benchmarks, err := readSpec(specPath, streams.In)
	if err != nil {
		return err
	}
	selected, err := spec.Select(benchmarks, benchName)
	if err != nil {
		return err
	}

	printer := output.NewPrinter(output.PrinterConfig{
		Writer:  streams.Err,
		NoColor: settings.NoColor,
	})

	checker := sanity.NewChecker(http.NewClient(http.WithTimeout(settings.SanityTimeout)), logger)
	runner := attack.NewRunner(attack.RunnerConfig{
		Attacker: attack.NewVegetaAttacker(settings.Attacker, logger),
		Checker:  checker,
		Token:    settings.Token,
		WorkDir:  settings.Workspace,
		Printer:  printer,
		Logger:   logger,
	})
	d := driver.New(driver.Config{
		Materializer: query.NewMaterializer(settings.Workspace, logger),
		Runner:       runner,
		Printer:      printer,
		Logger:       logger,
	})

	logger.Info("starting run",
		zap.Int("benchmarks", len(selected)),
		zap.String("candidate", candidate),
		zap.String("workspace", settings.Workspace))

	agg := result.NewAggregator()
	for _, b := range selected {
		out, err := d.Run(cmd.Context(), b, candidate)
		if err != nil {
			return fmt.Errorf("benchmark %s interrupted: %w", b.Name, err)
		}
		agg.Add(b.Name, out)
	}

	if err := result.WriteJSON(settings.Output, agg.Results()); err != nil {
		return err
	}
	logger.Info("results written", zap.String("path", settings.Output))

	if settings.Summary {
		result.WriteTable(streams.Out, agg.Results())
		fmt.Fprintln(streams.Out)
		checker.Latencies().WriteTable(streams.Out)
	}

	if outcome := agg.Outcome(); !outcome.Clean() {
		return fmt.Errorf("%w (%d failed)", ErrDirtyRun, outcome.SanityFailures())
	}
	return nil
}

func readSpec(path string, stdin io.Reader) ([]spec.Benchmark, error) {
	if path == "" || path == "-" {
		return spec.Read(stdin, "")
	}
	return spec.Load(path)
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

// Package driver expands a benchmark into its candidate and rate sweeps.
package driver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/wesleyorama2/graphql-bench/internal/bench/attack"
	"github.com/wesleyorama2/graphql-bench/internal/bench/query"
	"github.com/wesleyorama2/graphql-bench/internal/bench/result"
	"github.com/wesleyorama2/graphql-bench/internal/bench/spec"
	"github.com/wesleyorama2/graphql-bench/internal/output"
)

// Materializer builds request bodies from query documents.
type Materializer interface {
	Materialize(queriesFile, operationName string, variables map[string]interface{}) (*query.Body, error)
}

// Runner measures a single rate point.
type Runner interface {
	Run(ctx context.Context, t attack.Target) (*attack.Report, error)
}

// Driver runs benchmarks one candidate and one rate at a time.
type Driver struct {
	materializer Materializer
	runner       Runner
	printer      *output.Printer
	logger       *zap.Logger
}

// Config contains configuration for Driver.
type Config struct {
	Materializer Materializer
	Runner       Runner
	Printer      *output.Printer
	Logger       *zap.Logger
}

// New creates a Driver.
func New(config Config) *Driver {
	if config.Printer == nil {
		config.Printer = output.NewPrinter(output.PrinterConfig{})
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Driver{
		materializer: config.Materializer,
		runner:       config.Runner,
		printer:      config.Printer,
		logger:       config.Logger,
	}
}

// Run sweeps every rate of b against each candidate matching candidate (all of
// them when empty). A candidate filter matching nothing yields empty results.
//
// Rate points that were not measured are recorded as nil reports and never stop
// the sweep. Run only returns an error when ctx is done, in which case the
// partial results are discarded.
func (d *Driver) Run(ctx context.Context, b spec.Benchmark, candidate string) (*result.BenchmarkOutcome, error) {
	d.printer.Benchmark(b.Name)

	out := result.NewBenchmarkOutcome()
	for _, c := range spec.FilterCandidates(b.Candidates, candidate) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := d.runCandidate(ctx, spec.Resolve(b, c), out); err != nil {
			return nil, err
		}
	}

	d.printer.Banner(output.LevelBenchmark, "=")
	return out, nil
}

func (d *Driver) runCandidate(ctx context.Context, r spec.Resolved, out *result.BenchmarkOutcome) error {
	d.printer.Candidate(r.Query, r.Candidate, r.URL)
	rates := out.Results.Candidate(r.Candidate)

	body, err := d.materializer.Materialize(r.QueriesFile, r.Query, r.Variables)
	if err != nil {
		// Without a body there is nothing to preflight, so every rate counts as a
		// failed check.
		d.printer.Warning(output.LevelPhase, "skipping candidate %s: %v", r.Candidate, err)
		d.logger.Error("materialize failed",
			zap.String("benchmark", r.Benchmark),
			zap.String("candidate", r.Candidate),
			zap.String("queries_file", r.QueriesFile),
			zap.Error(err))
		for _, rps := range r.Load.Rates {
			rates.Set(rps, nil)
			out.Outcome.RecordSanityFailure()
		}
		return nil
	}

	if r.Load.Warmup > 0 {
		d.printer.Phase("Warmup")
		if err := d.sweep(ctx, r, body, r.Load.Warmup, &out.Outcome, nil); err != nil {
			return err
		}
	}

	d.printer.Phase("Benchmark")
	return d.sweep(ctx, r, body, r.Load.Duration, &out.Outcome, rates)
}

// sweep runs every rate of r in order. Reports are recorded in rates when it is
// not nil.
func (d *Driver) sweep(ctx context.Context, r spec.Resolved, body *query.Body, duration time.Duration, outcome *result.Outcome, rates *result.RateResults) error {
	for _, rps := range r.Load.Rates {
		d.printer.Rate(rps, int(duration/time.Second), r.Load.Connections, r.Variables)

		report, err := d.runner.Run(ctx, attack.Target{
			URL:         r.URL,
			Operation:   r.Query,
			Body:        body,
			Headers:     r.Headers,
			Rate:        rps,
			Duration:    duration,
			Connections: r.Load.Connections,
			Workers:     r.Load.Workers,
			MaxWorkers:  r.Load.MaxWorkers,
			Timeout:     r.Load.Timeout,
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if errors.Is(err, attack.ErrSanityFailed) {
				outcome.RecordSanityFailure()
			}
			d.logger.Warn("rate point not measured",
				zap.String("benchmark", r.Benchmark),
				zap.String("candidate", r.Candidate),
				zap.Int("rps", rps),
				zap.Error(err))
			report = nil
		}

		if rates != nil {
			rates.Set(rps, report)
		}
	}
	return nil
}

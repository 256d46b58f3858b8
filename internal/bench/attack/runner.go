// Package attack runs a single rate point against a candidate: preflight check,
// attacker invocation and report generation.
package attack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wesleyorama2/graphql-bench/internal/bench/query"
	"github.com/wesleyorama2/graphql-bench/internal/output"
)

// ErrSanityFailed is returned by Runner.Run when the preflight request was rejected
// and no load was applied.
var ErrSanityFailed = errors.New("sanity check failed")

// Checker verifies that a candidate answers a request before it is attacked.
type Checker interface {
	Check(ctx context.Context, url string, headers []string, body []byte) error
}

// Target is one fully specified rate point.
type Target struct {
	URL       string
	Operation string
	Body      *query.Body

	// Headers supplied by the spec, without the Authorization header
	Headers []string

	Rate        int
	Duration    time.Duration
	Connections int
	Workers     int
	MaxWorkers  int
	Timeout     string
}

// Runner executes rate points.
type Runner struct {
	attacker Attacker
	checker  Checker
	token    string
	workDir  string
	printer  *output.Printer
	logger   *zap.Logger
}

// RunnerConfig contains configuration for Runner.
type RunnerConfig struct {
	Attacker Attacker
	Checker  Checker

	// Token is sent as a bearer token with every non-introspection request
	Token string

	// WorkDir holds the transient results file of each run
	WorkDir string

	Printer *output.Printer
	Logger  *zap.Logger
}

// NewRunner creates a Runner.
func NewRunner(config RunnerConfig) *Runner {
	if config.WorkDir == "" {
		config.WorkDir = os.TempDir()
	}
	if config.Printer == nil {
		config.Printer = output.NewPrinter(output.PrinterConfig{})
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Runner{
		attacker: config.Attacker,
		checker:  config.Checker,
		token:    config.Token,
		workDir:  config.WorkDir,
		printer:  config.Printer,
		logger:   config.Logger,
	}
}

// Run checks the candidate, attacks it and returns the decoded report.
//
// A nil report is always accompanied by an error: ErrSanityFailed when the
// preflight was rejected, an *ExitError for attacker failures, or a decoding
// error. Every failure is printed before it is returned.
func (r *Runner) Run(ctx context.Context, t Target) (*Report, error) {
	headers := BuildHeaders(r.token, t.Operation, t.Headers)

	if err := r.checker.Check(ctx, t.URL, headers, t.Body.Data); err != nil {
		r.printer.Failure(output.LevelRate, "sanity check failed", failureDetails(err)...)
		return nil, fmt.Errorf("%w: %w", ErrSanityFailed, err)
	}

	results, err := r.capture(ctx, Options{
		URL:         t.URL,
		BodyFile:    t.Body.Path,
		Headers:     headers,
		Rate:        t.Rate,
		Duration:    t.Duration,
		Connections: t.Connections,
		Workers:     t.Workers,
		MaxWorkers:  t.MaxWorkers,
		Timeout:     t.Timeout,
	})
	if err != nil {
		r.printExitError(err)
		return nil, err
	}

	// Both views are rendered from the same captured results.
	jsonReport, err := r.attacker.Report(ctx, results, FormatJSON)
	if err != nil {
		r.printExitError(err)
		return nil, err
	}
	textReport, err := r.attacker.Report(ctx, results, FormatText)
	if err != nil {
		r.printExitError(err)
		return nil, err
	}

	r.printer.Lines(output.LevelRate, string(textReport))

	report, err := DecodeReport(jsonReport)
	if err != nil {
		r.printer.Failure(output.LevelRate, err.Error())
		return nil, err
	}
	return report, nil
}

// capture runs the attack into a transient file that is removed before returning,
// and returns its content.
func (r *Runner) capture(ctx context.Context, opts Options) ([]byte, error) {
	path := filepath.Join(r.workDir, "results-"+uuid.NewString()+".bin")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			r.logger.Warn("failed to remove results file", zap.String("path", path), zap.Error(err))
		}
	}()

	attackErr := r.attacker.Attack(ctx, opts, f)
	if err := f.Close(); err != nil && attackErr == nil {
		return nil, fmt.Errorf("failed to close results file: %w", err)
	}
	if attackErr != nil {
		return nil, attackErr
	}

	results, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	r.logger.Debug("captured attack results", zap.String("path", path), zap.Int("bytes", len(results)))
	return results, nil
}

func (r *Runner) printExitError(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		r.printer.Failure(output.LevelRate, err.Error())
		return
	}

	r.printer.Failure(output.LevelRate, fmt.Sprintf("%s failed: %v", exitErr.Stage, exitErr.Err))
	if stderr := strings.TrimRight(exitErr.Stderr, "\n"); stderr != "" {
		r.printer.Lines(output.LevelRate+1, stderr)
	}
}

func failureDetails(err error) []string {
	var detailed interface{ Details() []string }
	if errors.As(err, &detailed) {
		return detailed.Details()
	}
	return []string{err.Error()}
}

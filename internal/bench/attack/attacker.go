package attack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Stage names the attacker invocation that failed.
type Stage string

const (
	StageAttack Stage = "attack"
	StageReport Stage = "report"
)

// ReportFormat selects the view produced from captured results.
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatText ReportFormat = "text"
)

// Options fully describes one attack.
type Options struct {
	URL         string
	BodyFile    string
	Headers     []string
	Rate        int
	Duration    time.Duration
	Connections int
	Workers     int
	MaxWorkers  int
	Timeout     string
}

// Args returns the attacker command line for o, without the binary name.
func (o Options) Args() []string {
	args := []string{
		"attack",
		"-rate", strconv.Itoa(o.Rate),
		"-duration", fmt.Sprintf("%ds", int64(o.Duration/time.Second)),
		"-connections", strconv.Itoa(o.Connections),
	}
	if o.Workers > 0 {
		args = append(args, "-workers", strconv.Itoa(o.Workers))
	}
	if o.MaxWorkers > 0 {
		args = append(args, "-max-workers", strconv.Itoa(o.MaxWorkers))
	}
	args = append(args, "-timeout", o.Timeout, "-body", o.BodyFile)
	for _, h := range o.Headers {
		args = append(args, "-header", h)
	}
	return args
}

// Attacker generates load and renders reports from the captured results.
type Attacker interface {
	// Attack runs the load described by opts and writes the binary results to out.
	Attack(ctx context.Context, opts Options, out io.Writer) error

	// Report renders captured results in the given format.
	Report(ctx context.Context, results []byte, format ReportFormat) ([]byte, error)
}

// ExitError is returned when an attacker subprocess fails.
type ExitError struct {
	Stage  Stage
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Stage, e.Err, msg)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// DefaultBinary is the attacker executable looked up on PATH.
const DefaultBinary = "vegeta"

// VegetaAttacker drives the vegeta command line tool.
type VegetaAttacker struct {
	binary string
	logger *zap.Logger
}

// NewVegetaAttacker creates an attacker running binary, or DefaultBinary when empty.
func NewVegetaAttacker(binary string, logger *zap.Logger) *VegetaAttacker {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VegetaAttacker{binary: binary, logger: logger}
}

// Attack implements Attacker. The single target line "POST <url>" is fed on stdin.
func (v *VegetaAttacker) Attack(ctx context.Context, opts Options, out io.Writer) error {
	args := opts.Args()
	v.logger.Debug("running attacker", zap.String("binary", v.binary), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, v.binary, args...)
	cmd.Stdin = strings.NewReader("POST " + opts.URL)
	cmd.Stdout = out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExitError{Stage: StageAttack, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// Report implements Attacker.
func (v *VegetaAttacker) Report(ctx context.Context, results []byte, format ReportFormat) ([]byte, error) {
	args := []string{"report"}
	if format == FormatJSON {
		args = append(args, "-type=json")
	}

	cmd := exec.CommandContext(ctx, v.binary, args...)
	cmd.Stdin = bytes.NewReader(results)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ExitError{Stage: StageReport, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

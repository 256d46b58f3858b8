// Package output renders human-readable benchmark progress.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Indentation levels used by the benchmark progress output.
const (
	LevelBenchmark = 0
	LevelCandidate = 1
	LevelPhase     = 2
	LevelRate      = 3
)

const (
	bannerWidth  = 20
	indentString = "  "
)

// Printer writes indented progress lines, two spaces per level.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
	scheme  *ColorScheme
}

// PrinterConfig contains configuration for Printer.
type PrinterConfig struct {
	Writer      io.Writer
	NoColor     bool
	ForceColors bool
}

// NewPrinter creates a printer. Colors are used only when the writer is a
// terminal that supports them, unless ForceColors is set.
func NewPrinter(config PrinterConfig) *Printer {
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	useColors := config.ForceColors || (!config.NoColor && isTerminal(config.Writer) && supportsColors())

	scheme := NoColorScheme()
	if useColors {
		scheme = DefaultColorScheme().forceColor()
	}

	return &Printer{
		w:       config.Writer,
		noColor: !useColors,
		scheme:  scheme,
	}
}

// Scheme returns the color scheme in use.
func (p *Printer) Scheme() *ColorScheme {
	return p.scheme
}

// Printf writes one formatted line at the given indentation level.
func (p *Printer) Printf(level int, format string, args ...interface{}) {
	p.Lines(level, fmt.Sprintf(format, args...))
}

// Lines writes every line of text at the given indentation level.
func (p *Printer) Lines(level int, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prefix := strings.Repeat(indentString, level)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(p.w, prefix+line)
	}
}

// Banner writes a separator made of ch.
func (p *Printer) Banner(level int, ch string) {
	p.Lines(level, p.scheme.Banner.Sprint(strings.Repeat(ch, bannerWidth)))
}

// Benchmark writes the header of a benchmark section.
func (p *Printer) Benchmark(name string) {
	p.Banner(LevelBenchmark, "=")
	p.Printf(LevelBenchmark, "benchmark: %s", p.scheme.Benchmark.Sprint(name))
}

// Candidate writes the header of a candidate section.
func (p *Printer) Candidate(query, name, url string) {
	p.Banner(LevelCandidate, "-")
	p.Printf(LevelCandidate, "candidate: %s on %s at %s", query, p.scheme.Candidate.Sprint(name), url)
}

// Phase writes a phase heading such as "Warmup:" or "Benchmark:".
func (p *Printer) Phase(name string) {
	p.Printf(LevelPhase, "%s:", name)
}

// Rate writes the header of a single rate point.
func (p *Printer) Rate(rps int, durationSeconds int, connections int, variables interface{}) {
	p.Banner(LevelRate, "+")
	p.Printf(LevelRate, "%s || Duration: %ds || # Open connections: %d || Query variables: %s",
		p.scheme.Rate.Sprintf("Rate: %d req/s", rps), durationSeconds, connections, formatVariables(variables))
}

// Success writes a success line at level.
func (p *Printer) Success(level int, format string, args ...interface{}) {
	p.Printf(level, "%s %s", SuccessIcon(p.noColor), p.scheme.Success.Sprintf(format, args...))
}

// Failure writes a failure line at level followed by optional detail lines one level deeper.
func (p *Printer) Failure(level int, message string, details ...string) {
	p.Printf(level, "%s %s", ErrorIcon(p.noColor), p.scheme.Error.Sprint(message))
	for _, d := range details {
		p.Lines(level+1, d)
	}
}

// Warning writes a warning line at level.
func (p *Printer) Warning(level int, format string, args ...interface{}) {
	p.Printf(level, "%s %s", WarningIcon(p.noColor), p.scheme.Warning.Sprintf(format, args...))
}

func formatVariables(v interface{}) string {
	switch vars := v.(type) {
	case nil:
		return "None"
	case map[string]interface{}:
		if vars == nil {
			return "None"
		}
	}
	return fmt.Sprintf("%v", v)
}

package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements of the progress output
type ColorScheme struct {
	Banner    *color.Color
	Benchmark *color.Color
	Candidate *color.Color
	Rate      *color.Color
	Success   *color.Color
	Error     *color.Color
	Warning   *color.Color
	Muted     *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Banner:    color.New(color.FgWhite, color.Faint),
		Benchmark: color.New(color.FgMagenta, color.Bold),
		Candidate: color.New(color.FgCyan, color.Bold),
		Rate:      color.New(color.FgBlue),
		Success:   color.New(color.FgGreen),
		Error:     color.New(color.FgRed),
		Warning:   color.New(color.FgYellow),
		Muted:     color.New(color.Faint),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Banner.DisableColor()
	scheme.Benchmark.DisableColor()
	scheme.Candidate.DisableColor()
	scheme.Rate.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Warning.DisableColor()
	scheme.Muted.DisableColor()

	return scheme
}

// forceColor enables every color of the scheme, overriding fatih/color's own
// detection of stdout.
func (s *ColorScheme) forceColor() *ColorScheme {
	s.Banner.EnableColor()
	s.Benchmark.EnableColor()
	s.Candidate.EnableColor()
	s.Rate.EnableColor()
	s.Success.EnableColor()
	s.Error.EnableColor()
	s.Warning.EnableColor()
	s.Muted.EnableColor()
	return s
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// WarningIcon returns a warning symbol with appropriate color
func WarningIcon(noColor bool) string {
	if noColor {
		return "⚠"
	}
	return color.New(color.FgYellow).Sprint("⚠")
}

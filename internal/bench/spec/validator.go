package spec

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a spec validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks a list of benchmarks.
//
// Returns nil if valid, or a *ValidationErrors containing every problem found.
func Validate(benchmarks []Benchmark) error {
	errs := &ValidationErrors{}

	if len(benchmarks) == 0 {
		errs.Add("", "at least one benchmark is required")
	}

	seen := make(map[string]bool, len(benchmarks))
	for i, b := range benchmarks {
		prefix := fmt.Sprintf("[%d]", i)
		if b.Name != "" {
			prefix = b.Name
			if seen[b.Name] {
				errs.Add(prefix+".name", "duplicate benchmark name")
			}
			seen[b.Name] = true
		} else {
			errs.Add(prefix+".name", "name is required")
		}
		validateBenchmark(prefix, &b, errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateBenchmark(prefix string, b *Benchmark, errs *ValidationErrors) {
	if len(b.RPS) == 0 {
		errs.Add(prefix+".rps", "at least one rate is required")
	}
	for i, rps := range b.RPS {
		if rps <= 0 {
			errs.Add(fmt.Sprintf("%s.rps[%d]", prefix, i), "rate must be greater than 0")
		}
	}

	if b.Duration <= 0 {
		errs.Add(prefix+".duration", "duration must be greater than 0")
	}
	if b.WarmupDuration < 0 {
		errs.Add(prefix+".warmup_duration", "warmup_duration cannot be negative")
	}

	if b.Timeout != "" {
		if d, err := time.ParseDuration(b.Timeout); err != nil {
			errs.Add(prefix+".timeout", fmt.Sprintf("invalid duration: %v", err))
		} else if d <= 0 {
			errs.Add(prefix+".timeout", "timeout must be greater than 0")
		}
	}

	if b.OpenConnections < 0 {
		errs.Add(prefix+".open_connections", "open_connections cannot be negative")
	}
	if b.Workers < 0 {
		errs.Add(prefix+".workers", "workers cannot be negative")
	}
	if b.MaxWorkers < 0 {
		errs.Add(prefix+".max_workers", "max_workers cannot be negative")
	}
	if b.Workers > 0 && b.MaxWorkers > 0 && b.Workers > b.MaxWorkers {
		errs.Add(prefix+".workers", "workers cannot be greater than max_workers")
	}

	validateHeaders(prefix+".headers", b.Headers, errs)

	if len(b.Candidates) == 0 {
		errs.Add(prefix+".candidates", "at least one candidate is required")
	}

	seen := make(map[string]bool, len(b.Candidates))
	for i, c := range b.Candidates {
		cprefix := fmt.Sprintf("%s.candidates[%d]", prefix, i)
		if c.Name == "" {
			errs.Add(cprefix+".name", "name is required")
		} else {
			if seen[c.Name] {
				errs.Add(cprefix+".name", fmt.Sprintf("duplicate candidate name %q", c.Name))
			}
			seen[c.Name] = true
		}
		if c.URL == "" {
			errs.Add(cprefix+".url", "url is required")
		}
		validateHeaders(cprefix+".headers", c.Headers, errs)

		r := Resolve(*b, c)
		if r.Query == "" {
			errs.Add(cprefix+".query", "no query set on the candidate or its benchmark")
		}
		if r.QueriesFile == "" {
			errs.Add(cprefix+".queries_file", "no queries_file set on the candidate or its benchmark")
		}
	}
}

func validateHeaders(field string, headers []string, errs *ValidationErrors) {
	for i, h := range headers {
		key, _, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("header %q must have the form 'Key: Value'", h))
		}
	}
}

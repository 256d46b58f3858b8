package spec

import (
	"errors"
	"fmt"
)

// ErrBenchmarkNotFound is returned by Select when the requested benchmark is absent.
var ErrBenchmarkNotFound = errors.New("no such benchmark exists in the spec")

// Select returns the benchmark named name, or every benchmark when name is empty.
func Select(benchmarks []Benchmark, name string) ([]Benchmark, error) {
	if name == "" {
		return benchmarks, nil
	}

	for _, b := range benchmarks {
		if b.Name == name {
			return []Benchmark{b}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBenchmarkNotFound, name)
}

// FilterCandidates returns the candidates named name, or all of them when name is
// empty. An unknown name yields an empty list, not an error.
func FilterCandidates(candidates []Candidate, name string) []Candidate {
	if name == "" {
		return candidates
	}

	filtered := []Candidate{}
	for _, c := range candidates {
		if c.Name == name {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Resolve merges c over the request defaults of b.
func Resolve(b Benchmark, c Candidate) Resolved {
	r := Resolved{
		Benchmark:   b.Name,
		Candidate:   c.Name,
		URL:         c.URL,
		Query:       b.Query,
		QueriesFile: b.QueriesFile,
		Variables:   b.QueryVariables,
		Headers:     b.Headers,
		Load:        LoadFor(b),
	}

	if c.Query != nil {
		r.Query = *c.Query
	}
	if c.QueriesFile != nil {
		r.QueriesFile = *c.QueriesFile
	}
	if c.QueryVariables != nil {
		r.Variables = c.QueryVariables
	}
	if c.Headers != nil {
		r.Headers = c.Headers
	}

	return r
}

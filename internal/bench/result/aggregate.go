package result

// Aggregator folds benchmark outcomes into the run's results in the order they are added.
type Aggregator struct {
	results []RunResult
	outcome Outcome
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{results: []RunResult{}}
}

// Add appends the results of benchmark and folds its outcome into the run outcome.
func (a *Aggregator) Add(benchmark string, b *BenchmarkOutcome) {
	results := NewCandidateResults()
	if b != nil {
		if b.Results != nil {
			results = b.Results
		}
		a.outcome.Merge(b.Outcome)
	}
	a.results = append(a.results, RunResult{Benchmark: benchmark, Results: results})
}

// Results returns the collected results.
func (a *Aggregator) Results() []RunResult {
	return a.results
}

// Outcome returns the run outcome.
func (a *Aggregator) Outcome() Outcome {
	return a.outcome
}

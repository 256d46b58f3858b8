package result

// Outcome tracks whether every sanity check of a run passed. The zero value is clean.
type Outcome struct {
	sanityFailures int
}

// RecordSanityFailure marks the outcome dirty. A dirty outcome never becomes clean again.
func (o *Outcome) RecordSanityFailure() {
	o.sanityFailures++
}

// Merge folds other into o.
func (o *Outcome) Merge(other Outcome) {
	o.sanityFailures += other.sanityFailures
}

// Clean reports whether no sanity check failed.
func (o Outcome) Clean() bool {
	return o.sanityFailures == 0
}

// SanityFailures returns the number of failed sanity checks.
func (o Outcome) SanityFailures() int {
	return o.sanityFailures
}

// BenchmarkOutcome is what the driver produces for one benchmark.
type BenchmarkOutcome struct {
	Results *CandidateResults
	Outcome Outcome
}

// NewBenchmarkOutcome creates a clean outcome with no results.
func NewBenchmarkOutcome() *BenchmarkOutcome {
	return &BenchmarkOutcome{Results: NewCandidateResults()}
}

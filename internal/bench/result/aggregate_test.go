package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	var o Outcome
	assert.True(t, o.Clean())

	o.RecordSanityFailure()
	assert.False(t, o.Clean())
	assert.Equal(t, 1, o.SanityFailures())

	o.Merge(Outcome{})
	assert.False(t, o.Clean(), "a dirty outcome stays dirty")

	var other Outcome
	other.RecordSanityFailure()
	other.RecordSanityFailure()
	o.Merge(other)
	assert.Equal(t, 3, o.SanityFailures())
}

func TestAggregator(t *testing.T) {
	agg := NewAggregator()
	assert.Empty(t, agg.Results())
	assert.True(t, agg.Outcome().Clean())

	first := NewBenchmarkOutcome()
	first.Results.Candidate("v1").Set(10, report(50))
	agg.Add("first", first)

	second := NewBenchmarkOutcome()
	second.Results.Candidate("v1").Set(10, nil)
	second.Outcome.RecordSanityFailure()
	agg.Add("second", second)

	agg.Add("third", nil)

	results := agg.Results()
	assert.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Benchmark)
	assert.Equal(t, "second", results[1].Benchmark)
	assert.Equal(t, "third", results[2].Benchmark)
	assert.Equal(t, 0, results[2].Results.Len())

	assert.False(t, agg.Outcome().Clean())
	assert.Equal(t, 1, agg.Outcome().SanityFailures())
}

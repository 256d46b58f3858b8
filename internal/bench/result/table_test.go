package result

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	b := NewBenchmarkOutcome()
	b.Results.Candidate("v1").Set(10, report(50))
	b.Results.Candidate("v1").Set(50, nil)

	agg := NewAggregator()
	agg.Add("smoke", b)
	agg.Add("empty", nil)

	var buf bytes.Buffer
	WriteTable(&buf, agg.Results())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, []string{"Benchmark", "Candidate", "Rate", "Requests", "p50", "p95", "p99", "Max", "Success", "Throughput"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"smoke", "v1", "10", "50", "2.00ms", "5.00ms", "8.00ms", "12.00ms", "100.00%", "10.00/s"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"smoke", "v1", "50", "-", "-", "-", "-", "-", "not", "measured", "-"}, strings.Fields(lines[3]))
}

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "-", fmtDuration(0))
	assert.Equal(t, "500.0µs", fmtDuration(500*time.Microsecond))
	assert.Equal(t, "1.50ms", fmtDuration(1500*time.Microsecond))
	assert.Equal(t, "2.25s", fmtDuration(2250*time.Millisecond))
}

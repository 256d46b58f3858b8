package attack

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is the JSON report produced by the attacker for a single run.
//
// A decoded report keeps the attacker's bytes and marshals back to them
// unchanged; the typed fields are for reading only.
type Report struct {
	Latencies   LatencyMetrics `json:"latencies"`
	BytesIn     ByteMetrics    `json:"bytes_in"`
	BytesOut    ByteMetrics    `json:"bytes_out"`
	Earliest    time.Time      `json:"earliest"`
	Latest      time.Time      `json:"latest"`
	End         time.Time      `json:"end"`
	Duration    time.Duration  `json:"duration"`
	Wait        time.Duration  `json:"wait"`
	Requests    uint64         `json:"requests"`
	Rate        float64        `json:"rate"`
	Throughput  float64        `json:"throughput"`
	Success     float64        `json:"success"`
	StatusCodes map[string]int `json:"status_codes"`
	Errors      []string       `json:"errors"`

	raw json.RawMessage
}

// Raw returns the attacker's JSON for the report, or nil when it was built in code.
func (r *Report) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON returns the attacker's JSON when the report was decoded from it.
func (r *Report) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain Report
	return json.Marshal((*plain)(r))
}

// LatencyMetrics holds the latency distribution of a run, in nanoseconds on the wire.
type LatencyMetrics struct {
	Total time.Duration `json:"total"`
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"50th"`
	P90   time.Duration `json:"90th"`
	P95   time.Duration `json:"95th"`
	P99   time.Duration `json:"99th"`
	Max   time.Duration `json:"max"`
	Min   time.Duration `json:"min"`
}

// ByteMetrics holds byte counts of a run.
type ByteMetrics struct {
	Total uint64  `json:"total"`
	Mean  float64 `json:"mean"`
}

// DecodeReport parses a JSON report.
func DecodeReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode attack report: %w", err)
	}
	r.raw = append(json.RawMessage(nil), data...)
	return &r, nil
}

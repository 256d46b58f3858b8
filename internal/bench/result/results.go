// Package result collects attack reports into the nested benchmark results written
// at the end of a run.
package result

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/wesleyorama2/graphql-bench/internal/bench/attack"
)

// RunResult holds the results of one benchmark.
type RunResult struct {
	Benchmark string            `json:"benchmark"`
	Results   *CandidateResults `json:"results"`
}

// RateResults maps request rates to reports. A nil report marks a rate that was
// not measured. Rates keep the position of their first Set; setting a rate again
// replaces its report.
type RateResults struct {
	order   []int
	reports map[int]*attack.Report
}

// NewRateResults creates an empty RateResults.
func NewRateResults() *RateResults {
	return &RateResults{reports: make(map[int]*attack.Report)}
}

// Set records the report for rps.
func (r *RateResults) Set(rps int, report *attack.Report) {
	if _, ok := r.reports[rps]; !ok {
		r.order = append(r.order, rps)
	}
	r.reports[rps] = report
}

// Get returns the report recorded for rps and whether rps was recorded at all.
func (r *RateResults) Get(rps int) (*attack.Report, bool) {
	report, ok := r.reports[rps]
	return report, ok
}

// Rates returns the recorded rates in insertion order.
func (r *RateResults) Rates() []int {
	return append([]int(nil), r.order...)
}

// Len returns the number of distinct rates.
func (r *RateResults) Len() int {
	return len(r.order)
}

// MarshalJSON encodes the rates as an object keyed by the decimal rate.
func (r *RateResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rps := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, strconv.Itoa(rps), r.reports[rps]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CandidateResults maps candidate names to their rate results in insertion order.
type CandidateResults struct {
	order []string
	rates map[string]*RateResults
}

// NewCandidateResults creates an empty CandidateResults.
func NewCandidateResults() *CandidateResults {
	return &CandidateResults{rates: make(map[string]*RateResults)}
}

// Candidate returns the rate results of name, adding an empty entry on first use.
func (c *CandidateResults) Candidate(name string) *RateResults {
	rates, ok := c.rates[name]
	if !ok {
		rates = NewRateResults()
		c.rates[name] = rates
		c.order = append(c.order, name)
	}
	return rates
}

// Get returns the rate results of name if present.
func (c *CandidateResults) Get(name string) (*RateResults, bool) {
	rates, ok := c.rates[name]
	return rates, ok
}

// Names returns the candidate names in insertion order.
func (c *CandidateResults) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of candidates.
func (c *CandidateResults) Len() int {
	return len(c.order)
}

// MarshalJSON encodes the candidates as an object in insertion order.
func (c *CandidateResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, name, c.rates[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

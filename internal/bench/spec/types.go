package spec

import "time"

const (
	// DefaultTimeout is the per-request attacker timeout when a benchmark sets none.
	DefaultTimeout = "1s"

	// DefaultOpenConnections is the attacker connection pool size when a benchmark sets none.
	DefaultOpenConnections = 20
)

// Benchmark is one named benchmark: a rate sweep applied to every candidate.
//
// Example YAML:
//
//	- name: smoke
//	  rps: [10, 50]
//	  duration: 5
//	  query: Ping
//	  queries_file: ping.graphql
//	  candidates:
//	    - name: v1
//	      url: http://localhost:8080/graphql
type Benchmark struct {
	Name string `json:"name" yaml:"name"`

	// RPS is the ordered list of request rates to sweep. Order is preserved and
	// duplicates are run independently.
	RPS []int `json:"rps" yaml:"rps"`

	// Duration of each measured run in seconds
	Duration int `json:"duration" yaml:"duration"`

	// Timeout is the per-request timeout handed to the attacker (e.g. "1s", "500ms")
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	OpenConnections int `json:"open_connections,omitempty" yaml:"open_connections,omitempty"`
	Workers         int `json:"workers,omitempty" yaml:"workers,omitempty"`
	MaxWorkers      int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`

	// WarmupDuration in seconds; zero disables the warmup sweep
	WarmupDuration int `json:"warmup_duration,omitempty" yaml:"warmup_duration,omitempty"`

	// Benchmark-level request defaults, overridable per candidate
	Query          string                 `json:"query,omitempty" yaml:"query,omitempty"`
	QueriesFile    string                 `json:"queries_file,omitempty" yaml:"queries_file,omitempty"`
	QueryVariables map[string]interface{} `json:"query_variables,omitempty" yaml:"query_variables,omitempty"`
	Headers        []string               `json:"headers,omitempty" yaml:"headers,omitempty"`

	Candidates []Candidate `json:"candidates" yaml:"candidates"`
}

// Candidate is one GraphQL endpoint under test.
//
// Override fields are pointers (or nil slices/maps) so that an absent key can be
// told apart from an explicitly empty value.
type Candidate struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`

	Query          *string                `json:"query,omitempty" yaml:"query,omitempty"`
	QueriesFile    *string                `json:"queries_file,omitempty" yaml:"queries_file,omitempty"`
	QueryVariables map[string]interface{} `json:"query_variables,omitempty" yaml:"query_variables,omitempty"`
	Headers        []string               `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// LoadParams holds the attacker parameters shared by every rate point of a benchmark.
type LoadParams struct {
	Rates       []int
	Duration    time.Duration
	Warmup      time.Duration
	Connections int
	Workers     int
	MaxWorkers  int
	Timeout     string
}

// Resolved is a candidate with every optional field merged against its benchmark.
type Resolved struct {
	Benchmark string
	Candidate string
	URL       string

	Query       string
	QueriesFile string
	Variables   map[string]interface{}
	Headers     []string

	Load LoadParams
}

// LoadFor returns the load parameters of b, with defaults applied.
func LoadFor(b Benchmark) LoadParams {
	timeout := b.Timeout
	if timeout == "" {
		timeout = DefaultTimeout
	}
	connections := b.OpenConnections
	if connections == 0 {
		connections = DefaultOpenConnections
	}

	return LoadParams{
		Rates:       b.RPS,
		Duration:    time.Duration(b.Duration) * time.Second,
		Warmup:      time.Duration(b.WarmupDuration) * time.Second,
		Connections: connections,
		Workers:     b.Workers,
		MaxWorkers:  b.MaxWorkers,
		Timeout:     timeout,
	}
}

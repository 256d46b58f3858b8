package attack

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/graphql-bench/internal/bench/query"
	"github.com/wesleyorama2/graphql-bench/internal/output"
)

type fakeChecker struct {
	err   error
	calls int

	url     string
	headers []string
	body    []byte
}

func (c *fakeChecker) Check(_ context.Context, url string, headers []string, body []byte) error {
	c.calls++
	c.url = url
	c.headers = headers
	c.body = body
	return c.err
}

type detailedError struct{}

func (detailedError) Error() string     { return "endpoint rejected request" }
func (detailedError) Details() []string { return []string{"status: 500", "boom"} }

type fakeAttacker struct {
	results   []byte
	attackErr error
	reportErr map[ReportFormat]error
	reports   map[ReportFormat][]byte

	attackCalls int
	opts        Options
	files       []string
	reported    [][]byte
}

func (a *fakeAttacker) Attack(_ context.Context, opts Options, out io.Writer) error {
	a.attackCalls++
	a.opts = opts
	if f, ok := out.(*os.File); ok {
		a.files = append(a.files, f.Name())
	}
	if _, err := out.Write(a.results); err != nil {
		return err
	}
	return a.attackErr
}

func (a *fakeAttacker) Report(_ context.Context, results []byte, format ReportFormat) ([]byte, error) {
	a.reported = append(a.reported, append([]byte(nil), results...))
	if err := a.reportErr[format]; err != nil {
		return nil, err
	}
	return a.reports[format], nil
}

func newFakeAttacker() *fakeAttacker {
	return &fakeAttacker{
		results: []byte("binary-results"),
		reports: map[ReportFormat][]byte{
			FormatJSON: []byte(sampleJSONReport),
			FormatText: []byte(sampleTextReport),
		},
		reportErr: map[ReportFormat]error{},
	}
}

func newTestRunner(t *testing.T, attacker Attacker, checker Checker) (*Runner, *bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	dir := t.TempDir()
	r := NewRunner(RunnerConfig{
		Attacker: attacker,
		Checker:  checker,
		Token:    "tok",
		WorkDir:  dir,
		Printer:  output.NewPrinter(output.PrinterConfig{Writer: &buf, NoColor: true}),
	})
	return r, &buf, dir
}

func testTarget() Target {
	return Target{
		URL:         "http://localhost:8080/graphql",
		Operation:   "Ping",
		Body:        &query.Body{Path: "/ws/ping.graphql.json", Data: []byte(`{"query":"{ping}"}`)},
		Headers:     []string{"X-Role: user"},
		Rate:        100,
		Duration:    5 * time.Second,
		Connections: 20,
		Timeout:     "1s",
	}
}

func assertWorkDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "results file should be removed")
}

func TestRunner_Run(t *testing.T) {
	attacker := newFakeAttacker()
	checker := &fakeChecker{}
	r, buf, dir := newTestRunner(t, attacker, checker)

	report, err := r.Run(context.Background(), testTarget())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, uint64(500), report.Requests)
	assert.Equal(t, 9*time.Millisecond, report.Latencies.P99)

	assert.Equal(t, 1, checker.calls)
	assert.Equal(t, "http://localhost:8080/graphql", checker.url)
	assert.Equal(t, []string{"Authorization: Bearer tok", "X-Role: user"}, checker.headers)
	assert.Equal(t, `{"query":"{ping}"}`, string(checker.body))

	assert.Equal(t, Options{
		URL:         "http://localhost:8080/graphql",
		BodyFile:    "/ws/ping.graphql.json",
		Headers:     []string{"Authorization: Bearer tok", "X-Role: user"},
		Rate:        100,
		Duration:    5 * time.Second,
		Connections: 20,
		Timeout:     "1s",
	}, attacker.opts)

	// both reports come from the same captured bytes
	require.Len(t, attacker.reported, 2)
	assert.Equal(t, []byte("binary-results"), attacker.reported[0])
	assert.Equal(t, attacker.reported[0], attacker.reported[1])

	require.Len(t, attacker.files, 1)
	assert.Contains(t, attacker.files[0], dir)
	assertWorkDirEmpty(t, dir)

	assert.Contains(t, buf.String(), "      Requests      [total, rate, throughput]  500, 100.20, 99.80\n")
}

func TestRunner_Run_Introspection(t *testing.T) {
	attacker := newFakeAttacker()
	checker := &fakeChecker{}
	r, _, _ := newTestRunner(t, attacker, checker)

	target := testTarget()
	target.Operation = IntrospectionOperation

	_, err := r.Run(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, []string{"X-Role: user"}, checker.headers)
	assert.Equal(t, []string{"X-Role: user"}, attacker.opts.Headers)
}

func TestRunner_Run_SanityFailure(t *testing.T) {
	attacker := newFakeAttacker()
	checker := &fakeChecker{err: detailedError{}}
	r, buf, dir := newTestRunner(t, attacker, checker)

	report, err := r.Run(context.Background(), testTarget())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, ErrSanityFailed))
	assert.ErrorAs(t, err, new(detailedError))

	assert.Equal(t, 0, attacker.attackCalls)
	assert.Empty(t, attacker.reported)
	assertWorkDirEmpty(t, dir)

	out := buf.String()
	assert.Contains(t, out, "sanity check failed")
	assert.Contains(t, out, "        status: 500\n")
	assert.Contains(t, out, "        boom\n")
}

func TestRunner_Run_AttackFailure(t *testing.T) {
	attacker := newFakeAttacker()
	attacker.attackErr = &ExitError{Stage: StageAttack, Stderr: "connection refused\n", Err: errors.New("exit status 1")}
	r, buf, dir := newTestRunner(t, attacker, &fakeChecker{})

	report, err := r.Run(context.Background(), testTarget())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.False(t, errors.Is(err, ErrSanityFailed))

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, StageAttack, exitErr.Stage)

	assert.Empty(t, attacker.reported)
	assertWorkDirEmpty(t, dir)

	out := buf.String()
	assert.Contains(t, out, "attack failed: exit status 1")
	assert.Contains(t, out, "        connection refused\n")
}

func TestRunner_Run_ReportFailure(t *testing.T) {
	attacker := newFakeAttacker()
	attacker.reportErr[FormatText] = &ExitError{Stage: StageReport, Err: errors.New("exit status 2")}
	r, buf, dir := newTestRunner(t, attacker, &fakeChecker{})

	report, err := r.Run(context.Background(), testTarget())
	require.Error(t, err)
	assert.Nil(t, report)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, StageReport, exitErr.Stage)
	assertWorkDirEmpty(t, dir)
	assert.Contains(t, buf.String(), "report failed: exit status 2")
}

func TestRunner_Run_UndecodableReport(t *testing.T) {
	attacker := newFakeAttacker()
	attacker.reports[FormatJSON] = []byte("not json")
	r, _, dir := newTestRunner(t, attacker, &fakeChecker{})

	report, err := r.Run(context.Background(), testTarget())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to decode attack report")
	assertWorkDirEmpty(t, dir)
}

func TestRunner_Run_MissingWorkDir(t *testing.T) {
	attacker := newFakeAttacker()
	r, _, dir := newTestRunner(t, attacker, &fakeChecker{})
	r.workDir = dir + "/missing"

	_, err := r.Run(context.Background(), testTarget())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create results file")
	assert.Equal(t, 0, attacker.attackCalls)
}

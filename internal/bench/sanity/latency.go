package sanity

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Histogram range in microseconds: 1µs to 10 minutes, 3 significant figures
	histogramMin     = 1
	histogramMax     = int64(10 * time.Minute / time.Microsecond)
	histogramSigFigs = 3
)

// Latencies records the response time of sanity requests per endpoint.
type Latencies struct {
	mu    sync.Mutex
	order []string
	hists map[string]*hdrhistogram.Histogram
}

// NewLatencies creates an empty recorder.
func NewLatencies() *Latencies {
	return &Latencies{hists: make(map[string]*hdrhistogram.Histogram)}
}

// Record adds one response time for url.
func (l *Latencies) Record(url string, d time.Duration) {
	micros := d.Microseconds()
	if micros < histogramMin {
		micros = histogramMin
	}
	if micros > histogramMax {
		micros = histogramMax
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	hist, ok := l.hists[url]
	if !ok {
		hist = hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)
		l.hists[url] = hist
		l.order = append(l.order, url)
	}
	// Clamped above, so the value is always in range.
	_ = hist.RecordValue(micros)
}

// LatencyStats summarizes the sanity requests sent to one endpoint.
type LatencyStats struct {
	URL   string
	Count int64
	Min   time.Duration
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Stats returns one summary per endpoint, in the order endpoints were first seen.
func (l *Latencies) Stats() []LatencyStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := make([]LatencyStats, 0, len(l.order))
	for _, url := range l.order {
		hist := l.hists[url]
		stats = append(stats, LatencyStats{
			URL:   url,
			Count: hist.TotalCount(),
			Min:   micros(hist.Min()),
			P50:   micros(hist.ValueAtQuantile(50)),
			P99:   micros(hist.ValueAtQuantile(99)),
			Max:   micros(hist.Max()),
		})
	}
	return stats
}

// WriteTable prints the per-endpoint summary.
func (l *Latencies) WriteTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"Endpoint", "Checks", "Min", "p50", "p99", "Max"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, s := range l.Stats() {
		fmt.Fprintln(tw, strings.Join([]string{
			s.URL,
			fmt.Sprintf("%d", s.Count),
			s.Min.String(),
			s.P50.String(),
			s.P99.String(),
			s.Max.String(),
		}, "\t"))
	}

	tw.Flush()
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}

// Package sanity performs a single preflight request against a candidate before
// load is applied to it.
package sanity

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/wesleyorama2/graphql-bench/internal/http"
)

// Failure describes why a preflight request was rejected.
type Failure struct {
	URL string

	// StatusCode is zero when the request never got a response
	StatusCode int
	Status     string

	// Messages holds the GraphQL error messages, or the transport error
	Messages []string

	// Body is the raw response body, if any
	Body string

	// NotJSON is set when a 2xx body could not be decoded
	NotJSON bool

	Err error
}

func (f *Failure) Error() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("request to %s failed: %v", f.URL, f.Err)
	case f.StatusCode < 200 || f.StatusCode >= 300:
		return fmt.Sprintf("request to %s returned %s", f.URL, f.Status)
	case f.NotJSON:
		return fmt.Sprintf("request to %s returned %s with a body that is not valid JSON", f.URL, f.Status)
	default:
		return fmt.Sprintf("request to %s returned %d GraphQL error(s): %s",
			f.URL, len(f.Messages), strings.Join(f.Messages, "; "))
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Details returns human-readable lines describing the failure.
func (f *Failure) Details() []string {
	var lines []string
	if f.Status != "" {
		lines = append(lines, "status: "+f.Status)
	}
	for _, m := range f.Messages {
		lines = append(lines, "error: "+m)
	}
	if f.Err == nil && len(f.Messages) == 0 && f.Body != "" {
		lines = append(lines, "body: "+f.Body)
	}
	if f.Err != nil {
		lines = append(lines, "error: "+f.Err.Error())
	}
	return lines
}

// Checker issues preflight requests.
type Checker struct {
	client    *http.Client
	logger    *zap.Logger
	latencies *Latencies
}

// NewChecker creates a Checker using client for requests.
func NewChecker(client *http.Client, logger *zap.Logger) *Checker {
	if client == nil {
		client = http.NewClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{client: client, logger: logger, latencies: NewLatencies()}
}

// Latencies returns the response times of every answered sanity request.
func (c *Checker) Latencies() *Latencies {
	return c.latencies
}

// Check POSTs body to url with the given "Key: Value" headers.
//
// It returns nil only when the response status is 2xx, the body decodes as JSON
// and it carries no non-empty top-level "errors" array. Any other outcome is
// returned as a *Failure.
func (c *Checker) Check(ctx context.Context, url string, headers []string, body []byte) error {
	req, err := http.NewRequest("POST", url).WithBody(body).WithHeaderLines(headers)
	if err != nil {
		return &Failure{URL: url, Err: err}
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		c.logger.Debug("sanity request failed", zap.String("url", url), zap.Error(err))
		return &Failure{URL: url, Err: err}
	}

	c.latencies.Record(url, resp.ResponseTime)
	c.logger.Debug("sanity response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int64("elapsed_ms", resp.ResponseTime.Milliseconds()))

	failure := &Failure{
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.Text(),
	}
	switch {
	case !resp.OK():
		failure.Messages = errorMessages(resp.Body())
		return failure
	case !resp.IsJSON():
		failure.NotJSON = true
		failure.Messages = []string{"response is not valid JSON"}
		return failure
	}

	if messages := errorMessages(resp.Body()); len(messages) > 0 {
		failure.Messages = messages
		return failure
	}
	return nil
}

// errorMessages returns one entry per element of the top-level "errors" array,
// preferring each element's "message" field.
func errorMessages(body []byte) []string {
	if !gjson.ValidBytes(body) {
		return nil
	}

	errs := gjson.GetBytes(body, "errors")
	if !errs.IsArray() {
		return nil
	}

	var messages []string
	errs.ForEach(func(_, value gjson.Result) bool {
		if msg := value.Get("message"); msg.Exists() {
			messages = append(messages, msg.String())
		} else {
			messages = append(messages, value.Raw)
		}
		return true
	})
	return messages
}

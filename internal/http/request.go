package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Request represents an HTTP request against an absolute URL
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// NewRequest creates a new HTTP request
func NewRequest(method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Headers: make(http.Header),
	}
}

// WithHeaderLines adds headers given as "Key: Value" lines
func (r *Request) WithHeaderLines(lines []string) (*Request, error) {
	for _, line := range lines {
		key, value, err := ParseHeaderLine(line)
		if err != nil {
			return r, err
		}
		r.Headers.Add(key, value)
	}
	return r, nil
}

// WithBody sets the body of the request
func (r *Request) WithBody(body []byte) *Request {
	r.Body = body
	return r
}

// Build constructs an http.Request from the Request
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	var bodyReader io.Reader
	if r.Body != nil {
		bodyReader = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, values := range r.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if r.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// ParseHeaderLine splits a "Key: Value" header line
func ParseHeaderLine(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid header %q: expected 'Key: Value'", line)
	}
	return key, strings.TrimSpace(value), nil
}

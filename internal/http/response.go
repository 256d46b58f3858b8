package http

import (
	"time"

	"github.com/tidwall/gjson"
)

// Response is an HTTP response whose body has already been read.
type Response struct {
	StatusCode   int
	Status       string
	ResponseTime time.Duration
	body         []byte
}

// Body returns the raw response body.
func (r *Response) Body() []byte {
	return r.body
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.body)
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the body is a well-formed JSON document.
func (r *Response) IsJSON() bool {
	return gjson.ValidBytes(r.body)
}

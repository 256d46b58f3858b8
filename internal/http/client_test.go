package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected method POST, got %s", r.Method)
		}

		if r.URL.Path != "/graphql" {
			t.Errorf("Expected path /graphql, got %s", r.URL.Path)
		}

		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("Expected Authorization: Bearer secret, got %s", r.Header.Get("Authorization"))
		}

		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"query":"{ ping }"}` {
			t.Errorf("Unexpected request body %s", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"ping":"pong"}}`))
	}))
	defer server.Close()

	client := NewClient(WithTimeout(5 * time.Second))

	req, err := NewRequest("POST", server.URL+"/graphql").
		WithBody([]byte(`{"query":"{ ping }"}`)).
		WithHeaderLines([]string{"Authorization: Bearer secret"})
	if err != nil {
		t.Fatalf("Error adding headers: %v", err)
	}

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if !resp.OK() {
		t.Errorf("Expected OK to be true")
	}

	if !resp.IsJSON() {
		t.Errorf("Expected a JSON body")
	}

	expectedBody := `{"data":{"ping":"pong"}}`
	if resp.Text() != expectedBody {
		t.Errorf("Expected body %s, got %s", expectedBody, resp.Text())
	}

	if resp.ResponseTime <= 0 {
		t.Errorf("Expected a positive response time, got %v", resp.ResponseTime)
	}
}

func TestClient_WithTimeout(t *testing.T) {
	tests := []struct {
		name    string
		options []ClientOption
		want    time.Duration
	}{
		{name: "default", want: DefaultTimeout},
		{name: "explicit", options: []ClientOption{WithTimeout(10 * time.Second)}, want: 10 * time.Second},
		{name: "zero ignored", options: []ClientOption{WithTimeout(0)}, want: DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.options...)
			if client.httpClient.Timeout != tt.want {
				t.Errorf("Expected timeout %v, got %v", tt.want, client.httpClient.Timeout)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(20 * time.Millisecond))
	_, err := client.Do(context.Background(), NewRequest("GET", server.URL))
	if err == nil {
		t.Errorf("Expected timeout error, got nil")
	}
}

func TestClient_InvalidURL(t *testing.T) {
	client := NewClient()
	_, err := client.Do(context.Background(), NewRequest("GET", "://bad-url"))
	if err == nil {
		t.Errorf("Expected error for invalid URL, got nil")
	}
}

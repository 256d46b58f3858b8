// Stub GraphQL endpoint for local smoke runs of graphql-bench.
//
//	go run ./scripts/graphql-stub -addr :8080
//
// POST /graphql answers every operation with a fixed payload. Operations named
// "Fail" get a GraphQL error, which makes the sanity check reject the candidate.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/tidwall/gjson"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	// Use all CPU cores
	runtime.GOMAXPROCS(runtime.NumCPU())

	http.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil || !gjson.ValidBytes(body) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"errors":[{"message":"invalid request body"}]}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch op := gjson.GetBytes(body, "operationName").String(); op {
		case "Fail":
			fmt.Fprint(w, `{"data":null,"errors":[{"message":"stub failure"}]}`)
		case "Introspection":
			fmt.Fprint(w, `{"data":{"__schema":{"types":[{"name":"Query"}]}}}`)
		default:
			fmt.Fprintf(w, `{"data":{"ping":"pong","operation":%q}}`, op)
		}
	})

	// Health check
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "healthy")
	})

	// Configure server for high throughput
	server := &http.Server{
		Addr:              *addr,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Printf("Starting GraphQL stub on %s", *addr)

	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

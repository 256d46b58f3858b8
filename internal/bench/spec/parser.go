package spec

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/graphql-bench/pkg/jsonschema"
)

//go:embed schema.json
var schemaJSON string

var documentSchema = jsonschema.MustCompile("graphql-bench-spec.json", schemaJSON)

// Load reads and parses a spec file.
func Load(path string) ([]Benchmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	return Parse(data, path)
}

// Read parses a spec from r. name is only used to pick the format and may be empty.
func Read(r io.Reader, name string) ([]Benchmark, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec: %w", err)
	}

	return Parse(data, name)
}

// Parse parses spec data.
//
// The format is determined by the extension of name:
//   - .json -> JSON
//   - anything else -> YAML (which also accepts JSON documents)
//
// The document is checked against the embedded JSON Schema, decoded and then
// validated with Validate.
func Parse(data []byte, name string) ([]Benchmark, error) {
	var doc interface{}
	isJSON := strings.ToLower(filepath.Ext(name)) == ".json"

	if isJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON spec: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML spec: %w", err)
		}
	}

	if err := documentSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("spec does not match schema: %w", err)
	}

	var benchmarks []Benchmark
	if isJSON {
		if err := json.Unmarshal(data, &benchmarks); err != nil {
			return nil, fmt.Errorf("failed to decode JSON spec: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &benchmarks); err != nil {
			return nil, fmt.Errorf("failed to decode YAML spec: %w", err)
		}
	}

	if err := Validate(benchmarks); err != nil {
		return nil, err
	}

	return benchmarks, nil
}

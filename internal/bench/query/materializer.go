// Package query turns GraphQL query documents into wire-ready request bodies.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// CacheSuffix is appended to a query document path to name its materialized body.
const CacheSuffix = ".json"

// Request is the JSON body POSTed to a GraphQL endpoint. Variables is a pointer
// so that an explicitly empty map is still written.
type Request struct {
	Query         string                  `json:"query"`
	OperationName string                  `json:"operationName"`
	Variables     *map[string]interface{} `json:"variables,omitempty"`
}

// Body is a materialized request body and the file that holds it.
type Body struct {
	// Path of the cached body on disk, handed to the attacker
	Path string

	// Data is the exact content of Path
	Data []byte
}

// Materializer reads query documents relative to Root and caches their bodies
// as <document>.json siblings.
//
// A cached body is reused verbatim for as long as the file exists, even when the
// operation name or variables requested later differ from the ones it was built
// with. Remove the .json files to force regeneration after editing a spec.
// The query document is only opened when no cached body exists, so a stale
// cache hides a document that has since been deleted.
type Materializer struct {
	root   string
	logger *zap.Logger

	mu     sync.Mutex
	bodies map[string]*Body
}

// NewMaterializer creates a Materializer rooted at root.
func NewMaterializer(root string, logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{
		root:   root,
		logger: logger,
		bodies: make(map[string]*Body),
	}
}

// Materialize returns the request body for queriesFile.
//
// The body is written once to <root>/<queriesFile>.json. When that file already
// exists it is returned as is and operationName and variables are ignored.
func (m *Materializer) Materialize(queriesFile, operationName string, variables map[string]interface{}) (*Body, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if body, ok := m.bodies[queriesFile]; ok {
		return body, nil
	}

	docPath := filepath.Join(m.root, queriesFile)
	bodyPath := docPath + CacheSuffix

	data, err := os.ReadFile(bodyPath)
	switch {
	case err == nil:
		m.logger.Debug("reusing materialized query body",
			zap.String("queries_file", queriesFile),
			zap.String("path", bodyPath))
	case errors.Is(err, fs.ErrNotExist):
		data, err = m.write(docPath, bodyPath, operationName, variables)
		if err != nil {
			return nil, err
		}
		m.logger.Debug("materialized query body",
			zap.String("queries_file", queriesFile),
			zap.String("operation", operationName),
			zap.String("path", bodyPath))
	default:
		return nil, fmt.Errorf("failed to read materialized body %s: %w", bodyPath, err)
	}

	body := &Body{Path: bodyPath, Data: data}
	m.bodies[queriesFile] = body
	return body, nil
}

func (m *Materializer) write(docPath, bodyPath, operationName string, variables map[string]interface{}) ([]byte, error) {
	doc, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read query document: %w", err)
	}

	req := Request{
		Query:         string(doc),
		OperationName: operationName,
	}
	if variables != nil {
		req.Variables = &variables
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body for %s: %w", docPath, err)
	}

	if err := os.WriteFile(bodyPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write materialized body: %w", err)
	}
	return data, nil
}

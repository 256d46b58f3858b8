package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench_results.json")

	b := NewBenchmarkOutcome()
	b.Results.Candidate("v1").Set(10, report(50))
	b.Results.Candidate("v1").Set(50, nil)

	agg := NewAggregator()
	agg.Add("smoke", b)

	require.NoError(t, WriteJSON(path, agg.Results()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []struct {
		Benchmark string                                `json:"benchmark"`
		Results   map[string]map[string]json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "smoke", decoded[0].Benchmark)
	assert.Len(t, decoded[0].Results["v1"], 2)
	assert.Equal(t, "null", string(decoded[0].Results["v1"]["50"]))
	assert.Contains(t, string(decoded[0].Results["v1"]["10"]), `"requests": 50`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteJSON_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench_results.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteJSON(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteJSON_MissingDirectory(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "missing", "out.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write results")
}

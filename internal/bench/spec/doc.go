// Package spec provides loading, validation and resolution of benchmark specs.
//
// A spec is a YAML (or JSON) list of benchmarks. Each benchmark sweeps a list of
// request rates against every one of its candidates:
//
//	benchmarks, err := spec.Load("bench.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	selected, err := spec.Select(benchmarks, "smoke")
//	if errors.Is(err, spec.ErrBenchmarkNotFound) {
//	    // fatal: the caller asked for a benchmark that does not exist
//	}
//
//	for _, c := range spec.FilterCandidates(selected[0].Candidates, "") {
//	    resolved := spec.Resolve(selected[0], c)
//	    _ = resolved.Query
//	}
package spec

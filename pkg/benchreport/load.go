package benchreport

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
)

// Index maps benchmark names to their results.
type Index map[string]BenchmarkResult

// Load reads and decodes the report stored at path.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads exactly one JSON report from r. Trailing data after the report
// and benchmark entries without a name are rejected.
func Decode(r io.Reader) (*Report, error) {
	dec := json.NewDecoder(r)

	var rep Report
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after report", ErrMalformedReport)
	}
	if rep.Benchmarks == nil {
		return nil, fmt.Errorf("%w: no benchmarks array", ErrMalformedReport)
	}
	for i, b := range rep.Benchmarks {
		if b.Name == "" {
			return nil, fmt.Errorf("%w: benchmarks[%d] has no name", ErrMalformedReport, i)
		}
	}
	return &rep, nil
}

// Index builds a name lookup over the report's benchmarks.
// Later entries with a duplicate name replace earlier ones.
func (r *Report) Index() Index {
	return lo.KeyBy(r.Benchmarks, func(b BenchmarkResult) string {
		return b.Name
	})
}

// Lookup returns the named benchmark. An entry the suite marked as failed
// is reported as ErrBenchmarkFailed.
func (idx Index) Lookup(name string) (BenchmarkResult, error) {
	b, ok := idx[name]
	if !ok {
		return BenchmarkResult{}, fmt.Errorf("%q: %w", name, ErrBenchmarkNotFound)
	}
	if b.Status != "" && b.Status != StatusSuccess {
		return BenchmarkResult{}, fmt.Errorf("%q (status %s): %s: %w", name, b.Status, b.ErrorMessage, ErrBenchmarkFailed)
	}
	return b, nil
}

// Names lists the benchmark names in report order.
func (r *Report) Names() []string {
	return lo.Map(r.Benchmarks, func(b BenchmarkResult, _ int) string {
		return b.Name
	})
}

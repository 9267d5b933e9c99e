package benchreport

import (
	"errors"
	"fmt"
	"strings"
)

// StatusSuccess is the status of a benchmark that ran to completion.
const StatusSuccess = "success"

var (
	ErrMalformedReport   = errors.New("malformed benchmark report")
	ErrBenchmarkNotFound = errors.New("benchmark not found")
	ErrBenchmarkFailed   = errors.New("benchmark did not succeed")
	ErrMissingMetric     = errors.New("missing metric")
)

// Latency holds the latency statistics of one benchmark.
type Latency struct {
	Average *float64 `json:"average"`
	Minimum *float64 `json:"minimum"`
	Maximum *float64 `json:"maximum"`
	P50     *float64 `json:"p50"`
	P90     *float64 `json:"p90"`
	P99     *float64 `json:"p99"`
	Unit    string   `json:"unit"`
}

// BenchmarkResult is one entry of the benchmarks array. Numeric fields are
// pointers so an absent key can be told apart from zero.
type BenchmarkResult struct {
	Name           string              `json:"name"`
	Status         string              `json:"status,omitempty"`
	ErrorMessage   string              `json:"error_message,omitempty"`
	Throughput     *float64            `json:"throughput"`
	ThroughputUnit string              `json:"throughput_unit"`
	Latency        *Latency            `json:"latency"`
	ExtraMetrics   map[string]*float64 `json:"extra_metrics"`
}

// Report is one run of the performance test suite on one system.
type Report struct {
	Timestamp  string            `json:"timestamp"`
	SystemInfo string            `json:"system_info"`
	Benchmarks []BenchmarkResult `json:"benchmarks"`
}

// ThroughputValue returns the top-level throughput of the benchmark.
func (b BenchmarkResult) ThroughputValue() (float64, error) {
	if b.Throughput == nil {
		return 0, fmt.Errorf("%s: throughput: %w", b.Name, ErrMissingMetric)
	}
	return *b.Throughput, nil
}

// AverageLatency returns latency.average in the unit the suite recorded.
func (b BenchmarkResult) AverageLatency() (float64, error) {
	if b.Latency == nil || b.Latency.Average == nil {
		return 0, fmt.Errorf("%s: latency.average: %w", b.Name, ErrMissingMetric)
	}
	return *b.Latency.Average, nil
}

// Extra returns a named value from extra_metrics.
func (b BenchmarkResult) Extra(key string) (float64, error) {
	v, ok := b.ExtraMetrics[key]
	if !ok {
		return 0, fmt.Errorf("%s: extra_metrics.%s: %w", b.Name, key, ErrMissingMetric)
	}
	if v == nil {
		return 0, fmt.Errorf("%s: extra_metrics.%s is null: %w", b.Name, key, ErrMalformedReport)
	}
	return *v, nil
}

var systemInfoKeys = []string{"OS", "CPU", "Memory"}

// SystemFields extracts the OS, CPU and Memory lines from system_info.
// Keys without a matching line are left out.
func (r *Report) SystemFields() map[string]string {
	fields := make(map[string]string, len(systemInfoKeys))
	for _, line := range strings.Split(r.SystemInfo, "\n") {
		line = strings.TrimSpace(line)
		for _, key := range systemInfoKeys {
			if v, ok := strings.CutPrefix(line, key+": "); ok {
				if _, seen := fields[key]; !seen {
					fields[key] = strings.TrimSpace(v)
				}
			}
		}
	}
	return fields
}

// SameSystem reports whether every field recorded by both reports matches.
func SameSystem(a, b *Report) bool {
	fa, fb := a.SystemFields(), b.SystemFields()
	for key, va := range fa {
		if vb, ok := fb[key]; ok && vb != va {
			return false
		}
	}
	return true
}

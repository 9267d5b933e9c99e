package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ciricc/perf-compare/internal/compare"
	"github.com/ciricc/perf-compare/pkg/benchreport"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtures(t *testing.T) (*benchreport.Report, *benchreport.Report) {
	t.Helper()
	dir := filepath.Join("..", "..", "pkg", "benchreport", "testdata")

	baseline, err := benchreport.Load(filepath.Join(dir, "uat6.json"))
	require.NoError(t, err)
	current, err := benchreport.Load(filepath.Join(dir, "uat7.json"))
	require.NoError(t, err)

	return baseline, current
}

func generate(t *testing.T, baseline, current *benchreport.Report, opts ...Opt) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, baseline, current, opts...))
	return buf.String()
}

func TestGenerate(t *testing.T) {
	baseline, current := loadFixtures(t)
	out := generate(t, baseline, current)

	lines := []string{
		strings.Repeat("=", 80),
		"   PERFORMANCE COMPARISON: UAT6 (CentOS 7) vs UAT7 (Ubuntu 24.04)",
		"## System Configuration",
		"| Metric | CentOS 7 (UAT6) | Ubuntu 24.04 (UAT7) | Change | Status |",
		"|--------|-----------------|---------------------|--------|--------|",

		"### 🖥️ CPU Performance",
		"| Throughput | 10.00 GOPS | 15.00 GOPS | +50.0% | ✅ IMPROVED |",
		"| Avg Latency | 100.00 ns | 80.00 ns | -20.0% | ✅ IMPROVED |",

		"### 💾 Cache Latencies",
		"| L1 Cache | 1.200 ns | 1.100 ns | -8.3% | ✅ IMPROVED |",
		"| L2 Cache | 4.000 ns | 4.200 ns | +5.0% | ➖ STABLE |",
		"| L3 Cache | 15.000 ns | 18.000 ns | +20.0% | ❌ DEGRADED |",

		"### 🧠 Memory Performance",
		"| Sequential Read | 12.0K MB/s | 13.5K MB/s | +12.5% | ✅ IMPROVED |",
		"| Sequential Write | 8.0K MB/s | 7.0K MB/s | -12.5% | ❌ DEGRADED |",
		"| Random Access Ops | 25.00M Ops/s | 30.00M Ops/s | +20.0% | ✅ IMPROVED |",
		"| Multithread BW | 45.0K MB/s | 44.0K MB/s | -2.2% | ➖ STABLE |",

		"### 💾 Disk I/O Performance",
		"| Sequential Read | 520 MB/s | 1100 MB/s | +111.5% | ✅ IMPROVED |",
		"| Sequential Write | 480 MB/s | 456 MB/s | -5.0% | ➖ STABLE |",
		"| Random Read IOPS | 150K | 190K | +26.7% | ✅ IMPROVED |",
		"| Random Write IOPS | 900 IOPS | 1200 IOPS | +33.3% | ✅ IMPROVED |",
		"| Random Read Latency | 1.000 ms | 1.200 ms | +20.0% | ❌ DEGRADED |",
		"| Random Write Latency | 2.000 ms | 1.500 ms | -25.0% | ✅ IMPROVED |",

		"## 📊 Summary",
		"- **CPU**: +50.0% higher throughput, -20.0% lower latency",
		"- **Disk**: +80.0% higher throughput",
		"- **Random I/O**: +26.7% more IOPS",
		"- **Memory**: +20.0% better random access",
		"### Root Causes of Performance Differences:",
		"### Recommendations:",
	}
	got := strings.Split(out, "\n")
	for _, l := range lines {
		assert.Contains(t, got, l)
	}

	// Tables appear in a fixed order and the report closes with the banner.
	cpu := strings.Index(out, "### 🖥️ CPU Performance")
	cache := strings.Index(out, "### 💾 Cache Latencies")
	mem := strings.Index(out, "### 🧠 Memory Performance")
	disk := strings.Index(out, "### 💾 Disk I/O Performance")
	summary := strings.Index(out, "## 📊 Summary")
	assert.True(t, cpu < cache && cache < mem && mem < disk && disk < summary)
	assert.True(t, strings.HasSuffix(out, "\n"+strings.Repeat("=", 80)+"\n"))

	assert.NotContains(t, out, "Recorded System Info")
}

func TestGenerateRecordedInfo(t *testing.T) {
	baseline, current := loadFixtures(t)
	out := generate(t, baseline, current,
		WithRecordedInfo(true),
		WithLabels(Labels{Current: "Ubuntu box"}),
	)

	assert.Contains(t, out, "\n## Recorded System Info\n")
	assert.Contains(t, out, "- **CentOS 7 (UAT6)**: captured 2025-04-02 10:15:31\n  - OS: CentOS Linux 7 (Core)\n")
	assert.Contains(t, out, "- **Ubuntu box**: captured 2025-04-03 09:02:11\n")
	assert.Contains(t, out, "⚠️  Systems have different configurations")
	assert.Contains(t, out, "| Metric | CentOS 7 (UAT6) | Ubuntu box | Change | Status |")
}

func TestGenerateRecordedInfoSameSystem(t *testing.T) {
	baseline, _ := loadFixtures(t)
	out := generate(t, baseline, baseline, WithRecordedInfo(true))

	assert.Contains(t, out, "## Recorded System Info")
	assert.NotContains(t, out, "different configurations")
	assert.Contains(t, out, "| Throughput | 10.00 GOPS | 10.00 GOPS | +0.0% | ➖ STABLE |")
}

func TestGenerateRecordedInfoComparesSystemFields(t *testing.T) {
	baseline, current := loadFixtures(t)
	baseline.SystemInfo = "OS: Ubuntu 24.04.2 LTS\nCPU: Intel(R) Xeon(R) CPU E5-2667 v4 @ 3.20GHz\nMemory: 128 GB"
	current.SystemInfo = "Memory: 128 GB\nHostname: uat7\nOS: Ubuntu 24.04.2 LTS\nCPU: Intel(R) Xeon(R) CPU E5-2667 v4 @ 3.20GHz"

	out := generate(t, baseline, current, WithRecordedInfo(true))
	assert.Contains(t, out, "  - Hostname: uat7\n")
	assert.NotContains(t, out, "different configurations")
}

func withoutBenchmark(r *benchreport.Report, name string) *benchreport.Report {
	out := *r
	out.Benchmarks = lo.Filter(r.Benchmarks, func(b benchreport.BenchmarkResult, _ int) bool {
		return b.Name != name
	})
	return &out
}

func TestGenerateMissingBenchmark(t *testing.T) {
	for _, name := range []string{"CPU", "Memory", "Disk I/O"} {
		t.Run(name, func(t *testing.T) {
			baseline, current := loadFixtures(t)

			var buf bytes.Buffer
			err := Generate(&buf, withoutBenchmark(baseline, name), current)
			assert.ErrorIs(t, err, benchreport.ErrBenchmarkNotFound)
			assert.ErrorContains(t, err, "baseline")
			assert.Empty(t, buf.String())

			buf.Reset()
			err = Generate(&buf, baseline, withoutBenchmark(current, name))
			assert.ErrorIs(t, err, benchreport.ErrBenchmarkNotFound)
			assert.ErrorContains(t, err, "current")
			assert.Empty(t, buf.String())
		})
	}
}

func TestGenerateMissingMetric(t *testing.T) {
	baseline, current := loadFixtures(t)

	disk, err := current.Index().Lookup("Disk I/O")
	require.NoError(t, err)
	delete(disk.ExtraMetrics, "random_write_latency_ms")

	var buf bytes.Buffer
	err = Generate(&buf, baseline, current)
	assert.ErrorIs(t, err, benchreport.ErrMissingMetric)
	assert.ErrorContains(t, err, "random_write_latency_ms")
	assert.Empty(t, buf.String())
}

func TestGenerateFailedBenchmark(t *testing.T) {
	baseline, current := loadFixtures(t)
	for i := range current.Benchmarks {
		if current.Benchmarks[i].Name == "Memory" {
			current.Benchmarks[i].Status = "error"
			current.Benchmarks[i].ErrorMessage = "mmap failed"
		}
	}

	var buf bytes.Buffer
	err := Generate(&buf, baseline, current)
	assert.ErrorIs(t, err, benchreport.ErrBenchmarkFailed)
	assert.ErrorContains(t, err, "mmap failed")
}

func TestCompareZeroBaseline(t *testing.T) {
	baseline, current := loadFixtures(t)

	disk, err := baseline.Index().Lookup("Disk I/O")
	require.NoError(t, err)
	disk.ExtraMetrics["random_write_iops"] = lo.ToPtr(0.0)

	c, err := Compare(baseline, current)
	require.NoError(t, err)

	row, ok := lo.Find(c.Disk, func(r Row) bool { return r.Name == "Random Write IOPS" })
	require.True(t, ok)
	assert.Equal(t, Row{
		Name:     "Random Write IOPS",
		Baseline: "0 IOPS",
		Current:  "1200 IOPS",
		Change:   0,
		Status:   compare.NotApplicable,
	}, row)
}

func TestCompareSummaryDeltas(t *testing.T) {
	baseline, current := loadFixtures(t)

	c, err := Compare(baseline, current)
	require.NoError(t, err)

	assert.InDelta(t, 50, c.CPUThroughput.ChangePct, 1e-9)
	assert.Equal(t, compare.Improved, c.CPUThroughput.Status)
	assert.InDelta(t, -20, c.CPULatency.ChangePct, 1e-9)
	assert.InDelta(t, 80, c.DiskThroughput.ChangePct, 1e-9)
	assert.InDelta(t, 26.6667, c.RandomReadIOPS.ChangePct, 1e-4)
	assert.InDelta(t, 20, c.MemoryRandom.ChangePct, 1e-9)
	assert.Len(t, c.CPU, 2)
	assert.Len(t, c.Cache, 3)
	assert.Len(t, c.Memory, 4)
	assert.Len(t, c.Disk, 6)
}

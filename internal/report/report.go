package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ciricc/perf-compare/internal/compare"
	"github.com/ciricc/perf-compare/pkg/benchreport"
)

const (
	benchCPU    = "CPU"
	benchMemory = "Memory"
	benchDisk   = "Disk I/O"
)

type metricSpec struct {
	name   string
	key    string
	dir    compare.Direction
	format formatFunc
}

var cacheLevels = []string{"l1", "l2", "l3"}

var memoryMetrics = []metricSpec{
	{"Sequential Read", "sequential_read_mbps", compare.HigherIsBetter, magnitude("MB/s")},
	{"Sequential Write", "sequential_write_mbps", compare.HigherIsBetter, magnitude("MB/s")},
	{"Random Access Ops", "random_access_ops_sec", compare.HigherIsBetter, magnitude("Ops/s")},
	{"Multithread BW", "multithread_throughput_mbps", compare.HigherIsBetter, magnitude("MB/s")},
}

var diskMetrics = []metricSpec{
	{"Sequential Read", "sequential_read_mbps", compare.HigherIsBetter, fixed("%.0f MB/s")},
	{"Sequential Write", "sequential_write_mbps", compare.HigherIsBetter, fixed("%.0f MB/s")},
	{"Random Read IOPS", "random_read_iops", compare.HigherIsBetter, iops},
	{"Random Write IOPS", "random_write_iops", compare.HigherIsBetter, iops},
	{"Random Read Latency", "random_read_latency_ms", compare.LowerIsBetter, fixed("%.3f ms")},
	{"Random Write Latency", "random_write_latency_ms", compare.LowerIsBetter, fixed("%.3f ms")},
}

// Comparison holds every table and summary figure of one report.
type Comparison struct {
	CPU    []Row
	Cache  []Row
	Memory []Row
	Disk   []Row

	CPUThroughput  compare.Delta
	CPULatency     compare.Delta
	DiskThroughput compare.Delta
	RandomReadIOPS compare.Delta
	MemoryRandom   compare.Delta
}

type pair struct {
	baseline benchreport.BenchmarkResult
	current  benchreport.BenchmarkResult
}

func lookupPair(base, cur benchreport.Index, name string) (pair, error) {
	b, err := base.Lookup(name)
	if err != nil {
		return pair{}, fmt.Errorf("baseline: %w", err)
	}
	c, err := cur.Lookup(name)
	if err != nil {
		return pair{}, fmt.Errorf("current: %w", err)
	}
	return pair{baseline: b, current: c}, nil
}

type getter func(benchreport.BenchmarkResult) (float64, error)

func extra(key string) getter {
	return func(b benchreport.BenchmarkResult) (float64, error) { return b.Extra(key) }
}

func (p pair) values(get getter) (float64, float64, error) {
	b, err := get(p.baseline)
	if err != nil {
		return 0, 0, fmt.Errorf("baseline: %w", err)
	}
	c, err := get(p.current)
	if err != nil {
		return 0, 0, fmt.Errorf("current: %w", err)
	}
	return b, c, nil
}

func (p pair) delta(get getter, dir compare.Direction) (compare.Delta, error) {
	b, c, err := p.values(get)
	if err != nil {
		return compare.Delta{}, err
	}
	return compare.Calculate(b, c, dir), nil
}

func (p pair) row(name string, get getter, dir compare.Direction, format formatFunc) (Row, error) {
	b, c, err := p.values(get)
	if err != nil {
		return Row{}, err
	}
	d := compare.Calculate(b, c, dir)
	bs, cs := format(b, c)
	return Row{Name: name, Baseline: bs, Current: cs, Change: d.ChangePct, Status: d.Status}, nil
}

// Compare extracts every metric of the report from both runs. It fails on the
// first benchmark or metric missing from either side.
func Compare(baseline, current *benchreport.Report) (*Comparison, error) {
	base, cur := baseline.Index(), current.Index()

	cpu, err := lookupPair(base, cur, benchCPU)
	if err != nil {
		return nil, err
	}
	mem, err := lookupPair(base, cur, benchMemory)
	if err != nil {
		return nil, err
	}
	disk, err := lookupPair(base, cur, benchDisk)
	if err != nil {
		return nil, err
	}

	var c Comparison

	throughput, err := cpu.row("Throughput", benchreport.BenchmarkResult.ThroughputValue, compare.HigherIsBetter, fixed("%.2f GOPS"))
	if err != nil {
		return nil, err
	}
	// The suite records CPU latency in microseconds.
	latency, err := cpu.row("Avg Latency", benchreport.BenchmarkResult.AverageLatency, compare.LowerIsBetter, scaled("%.2f ns", 1000))
	if err != nil {
		return nil, err
	}
	c.CPU = []Row{throughput, latency}
	c.CPUThroughput = compare.Delta{ChangePct: throughput.Change, Status: throughput.Status}
	c.CPULatency = compare.Delta{ChangePct: latency.Change, Status: latency.Status}

	for _, level := range cacheLevels {
		key := level + "_cache_latency_ns"
		r, err := cpu.row(strings.ToUpper(level)+" Cache", extra(key), compare.LowerIsBetter, fixed("%.3f ns"))
		if err != nil {
			return nil, err
		}
		c.Cache = append(c.Cache, r)
	}

	if c.Memory, err = groupRows(mem, memoryMetrics); err != nil {
		return nil, err
	}
	if c.Disk, err = groupRows(disk, diskMetrics); err != nil {
		return nil, err
	}

	if c.DiskThroughput, err = disk.delta(benchreport.BenchmarkResult.ThroughputValue, compare.HigherIsBetter); err != nil {
		return nil, err
	}
	if c.RandomReadIOPS, err = disk.delta(extra("random_read_iops"), compare.HigherIsBetter); err != nil {
		return nil, err
	}
	if c.MemoryRandom, err = mem.delta(extra("random_access_ops_sec"), compare.HigherIsBetter); err != nil {
		return nil, err
	}

	return &c, nil
}

func groupRows(p pair, specs []metricSpec) ([]Row, error) {
	rows := make([]Row, 0, len(specs))
	for _, s := range specs {
		r, err := p.row(s.name, extra(s.key), s.dir, s.format)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Generate compares the two reports and writes the Markdown report to w.
// Nothing is written when a benchmark or metric is missing.
func Generate(w io.Writer, baseline, current *benchreport.Report, opts ...Opt) error {
	o := buildOpts(Opts{Labels: DefaultLabels}, opts...)

	c, err := Compare(baseline, current)
	if err != nil {
		return err
	}

	p := &printer{w: w}
	writeHeader(p)
	if o.ShowRecordedInfo {
		writeRecordedInfo(p, baseline, current, o.Labels)
	}
	if p.err != nil {
		return p.err
	}

	tables := []struct {
		title string
		rows  []Row
	}{
		{"🖥️ CPU Performance", c.CPU},
		{"💾 Cache Latencies", c.Cache},
		{"🧠 Memory Performance", c.Memory},
		{"💾 Disk I/O Performance", c.Disk},
	}
	for _, t := range tables {
		if err := RenderTable(w, t.title, t.rows, o.Labels); err != nil {
			return err
		}
	}

	writeSummary(p, c)
	if o.ShowOverallStatus {
		writeOverallStatus(p, c.Health())
	}
	p.println("\n" + banner)
	return p.err
}

var banner = strings.Repeat("=", 80)

func writeHeader(p *printer) {
	p.println(banner)
	p.println("   PERFORMANCE COMPARISON: UAT6 (CentOS 7) vs UAT7 (Ubuntu 24.04)")
	p.println(banner)

	p.println("\n## System Configuration")
	p.println("Both systems: Intel Xeon E5-2667 v4 @ 3.20GHz, 16 cores")
	p.println("- **UAT6**: CentOS 7, Kernel 3.10.0-693.el7 (2017)")
	p.println("- **UAT7**: Ubuntu 24.04, Kernel 6.8.0-57 (2025)")
}

func writeRecordedInfo(p *printer, baseline, current *benchreport.Report, labels Labels) {
	p.println("\n## Recorded System Info")
	for _, r := range []struct {
		label string
		rep   *benchreport.Report
	}{{labels.Baseline, baseline}, {labels.Current, current}} {
		p.printf("- **%s**: captured %s\n", r.label, r.rep.Timestamp)
		for _, line := range strings.Split(strings.TrimSpace(r.rep.SystemInfo), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				p.printf("  - %s\n", line)
			}
		}
	}
	if !benchreport.SameSystem(baseline, current) {
		p.println("\n⚠️  Systems have different configurations")
	}
}

func writeSummary(p *printer, c *Comparison) {
	p.println("\n## 📊 Summary")
	p.println("\n### Key Performance Improvements (Ubuntu over CentOS):")
	p.printf("- **CPU**: %+.1f%% higher throughput, %.1f%% lower latency\n", c.CPUThroughput.ChangePct, c.CPULatency.ChangePct)
	p.printf("- **Disk**: %+.1f%% higher throughput\n", c.DiskThroughput.ChangePct)
	p.printf("- **Random I/O**: %+.1f%% more IOPS\n", c.RandomReadIOPS.ChangePct)
	p.printf("- **Memory**: %+.1f%% better random access\n", c.MemoryRandom.ChangePct)

	p.println("\n### Root Causes of Performance Differences:")
	p.println("1. **Kernel Version**: Ubuntu's kernel 6.8 vs CentOS's 3.10 (8-year gap)")
	p.println("2. **CPU Scheduler**: Modern CFS improvements and better NUMA handling")
	p.println("3. **I/O Stack**: Improved block layer, better SSD support")
	p.println("4. **Compiler**: Newer GCC with better optimizations")
	p.println("5. **Security Mitigations**: More efficient Spectre/Meltdown handling")

	p.println("\n### Recommendations:")
	p.println("✅ **Migrate to Ubuntu** for performance-critical workloads")
	p.println("📈 **Expected gains**: 50-75% improvement in CPU/IO intensive tasks")
	p.println("⚠️  **If staying on CentOS**: Consider upgrading to Rocky Linux 9 or AlmaLinux 9")
}

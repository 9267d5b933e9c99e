package report

import (
	"math"

	"github.com/ciricc/perf-compare/internal/compare"
)

// Health is the overall verdict over every compared metric.
type Health int

const (
	Healthy Health = iota
	Warning
	Critical
)

// CriticalThresholdPct is how far a degraded metric has to move before the
// whole comparison counts as critical.
const CriticalThresholdPct = 25.0

func (h Health) String() string {
	switch h {
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "HEALTHY"
	}
}

func (h Health) description() string {
	switch h {
	case Warning:
		return "Some benchmarks show degradation"
	case Critical:
		return "Significant performance degradation detected"
	default:
		return "All benchmarks within acceptable thresholds"
	}
}

// Health is Critical when any degraded row moved more than
// CriticalThresholdPct, Warning when any row degraded, Healthy otherwise.
func (c *Comparison) Health() Health {
	h := Healthy
	for _, rows := range [][]Row{c.CPU, c.Cache, c.Memory, c.Disk} {
		for _, r := range rows {
			if r.Status != compare.Degraded {
				continue
			}
			if math.Abs(r.Change) > CriticalThresholdPct {
				return Critical
			}
			h = Warning
		}
	}
	return h
}

func writeOverallStatus(p *printer, h Health) {
	p.println("\n## Overall Status")
	p.printf("**%s** - %s\n", h, h.description())
}

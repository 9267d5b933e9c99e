package compare

// Direction tells which sign of change counts as an improvement.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Status is the classification of a percentage change.
type Status int

const (
	Stable Status = iota
	Improved
	Degraded
	NotApplicable
)

// DegradedThresholdPct is how far a metric has to move the wrong way
// before it stops counting as stable. Improvement has no such margin.
const DegradedThresholdPct = 10.0

func (s Status) String() string {
	switch s {
	case Improved:
		return "IMPROVED"
	case Degraded:
		return "DEGRADED"
	case NotApplicable:
		return "N/A"
	default:
		return "STABLE"
	}
}

// Label is the status as shown in report tables.
func (s Status) Label() string {
	switch s {
	case Improved:
		return "✅ IMPROVED"
	case Degraded:
		return "❌ DEGRADED"
	case NotApplicable:
		return "N/A"
	default:
		return "➖ STABLE"
	}
}

// Delta is a percentage change together with its classification.
type Delta struct {
	ChangePct float64
	Status    Status
}

// Calculate returns the percentage change from baseline to current and its
// classification. A zero baseline yields a zero change and NotApplicable.
func Calculate(baseline, current float64, dir Direction) Delta {
	if baseline == 0 {
		return Delta{ChangePct: 0, Status: NotApplicable}
	}

	pct := (current - baseline) / baseline * 100

	return Delta{ChangePct: pct, Status: Classify(pct, dir)}
}

// Classify maps a percentage change to a status.
func Classify(pct float64, dir Direction) Status {
	if dir == LowerIsBetter {
		switch {
		case pct < 0:
			return Improved
		case pct > DegradedThresholdPct:
			return Degraded
		default:
			return Stable
		}
	}

	switch {
	case pct > 0:
		return Improved
	case pct < -DegradedThresholdPct:
		return Degraded
	default:
		return Stable
	}
}

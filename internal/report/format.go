package report

import "fmt"

type formatFunc func(baseline, current float64) (string, string)

// fixed formats both values with the same verb, e.g. "%.2f GOPS".
func fixed(format string) formatFunc {
	return func(baseline, current float64) (string, string) {
		return fmt.Sprintf(format, baseline), fmt.Sprintf(format, current)
	}
}

// scaled formats both values as value*factor with the given verb.
func scaled(format string, factor float64) formatFunc {
	return func(baseline, current float64) (string, string) {
		return fmt.Sprintf(format, baseline*factor), fmt.Sprintf(format, current*factor)
	}
}

// magnitude picks an M/K/raw bracket from the baseline and applies it to both
// values, so current is printed in the baseline's unit even when it is orders
// of magnitude away.
func magnitude(unit string) formatFunc {
	return func(baseline, current float64) (string, string) {
		switch {
		case baseline >= 1e6:
			return fmt.Sprintf("%.2fM %s", baseline/1e6, unit), fmt.Sprintf("%.2fM %s", current/1e6, unit)
		case baseline >= 1e3:
			return fmt.Sprintf("%.1fK %s", baseline/1e3, unit), fmt.Sprintf("%.1fK %s", current/1e3, unit)
		default:
			return fmt.Sprintf("%.1f %s", baseline, unit), fmt.Sprintf("%.1f %s", current, unit)
		}
	}
}

// iops is magnitude for operation rates: whole thousands, one decimal for
// millions, and no unit once a suffix is shown.
func iops(baseline, current float64) (string, string) {
	switch {
	case baseline >= 1e6:
		return fmt.Sprintf("%.1fM", baseline/1e6), fmt.Sprintf("%.1fM", current/1e6)
	case baseline >= 1e3:
		return fmt.Sprintf("%.0fK", baseline/1e3), fmt.Sprintf("%.0fK", current/1e3)
	default:
		return fmt.Sprintf("%.0f IOPS", baseline), fmt.Sprintf("%.0f IOPS", current)
	}
}

package report

// Opts controls the optional parts of a generated report.
type Opts struct {
	Labels Labels
	// ShowRecordedInfo adds a section with the timestamp and system_info
	// each report was captured with.
	ShowRecordedInfo bool
	// ShowOverallStatus adds a HEALTHY/WARNING/CRITICAL verdict before the
	// closing banner.
	ShowOverallStatus bool
}

// Opt sets one field of Opts.
type Opt func(opts *Opts)

// WithLabels overrides the table header labels. Empty fields keep the default.
func WithLabels(labels Labels) Opt {
	return func(opts *Opts) {
		if labels.Baseline != "" {
			opts.Labels.Baseline = labels.Baseline
		}
		if labels.Current != "" {
			opts.Labels.Current = labels.Current
		}
	}
}

// WithRecordedInfo toggles the recorded system info section.
func WithRecordedInfo(v bool) Opt {
	return func(opts *Opts) { opts.ShowRecordedInfo = v }
}

// WithOverallStatus toggles the overall status verdict.
func WithOverallStatus(v bool) Opt {
	return func(opts *Opts) { opts.ShowOverallStatus = v }
}

func buildOpts(defaultOpts Opts, opts ...Opt) Opts {
	o := defaultOpts
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

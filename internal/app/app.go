package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ciricc/perf-compare/internal/config"
	"github.com/ciricc/perf-compare/internal/report"
	"github.com/ciricc/perf-compare/pkg/benchreport"
	"golang.org/x/sync/errgroup"
)

// Application ties the configuration and logger to a report run.
type Application struct {
	Config config.Config
	Log    *slog.Logger
}

// New loads the configuration at cfgPath, falling back to defaults when the
// file does not exist, and sets up logging on stderr.
func New(cfgPath string) (*Application, error) {
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// stdout carries the report only.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	return &Application{
		Config: cfg,
		Log:    log,
	}, nil
}

// LoadReports reads the baseline and current reports. Both must load before
// anything is compared.
func (a *Application) LoadReports(ctx context.Context) (baseline, current *benchreport.Report, err error) {
	g, ctx := errgroup.WithContext(ctx)

	load := func(path string, dst **benchreport.Report) func() error {
		return func() error {
			r, err := benchreport.Load(path)
			if err != nil {
				return err
			}
			a.Log.DebugContext(ctx, "Loaded report",
				slog.String("path", path),
				slog.Int("benchmarks", len(r.Benchmarks)),
				slog.Any("names", r.Names()),
			)
			*dst = r
			return nil
		}
	}

	g.Go(load(a.Config.Inputs.Baseline, &baseline))
	g.Go(load(a.Config.Inputs.Current, &current))

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return baseline, current, nil
}

// Run loads both reports and writes the comparison to w.
func (a *Application) Run(ctx context.Context, w io.Writer) error {
	baseline, current, err := a.LoadReports(ctx)
	if err != nil {
		return err
	}

	return report.Generate(w, baseline, current,
		report.WithLabels(report.Labels{
			Baseline: a.Config.Labels.Baseline,
			Current:  a.Config.Labels.Current,
		}),
		report.WithRecordedInfo(a.Config.Report.ShowRecordedInfo),
		report.WithOverallStatus(a.Config.Report.ShowOverallStatus),
	)
}

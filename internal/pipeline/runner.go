package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/heritage-explorer/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// ReportSource produces score snapshots.
type ReportSource interface {
	Report(ctx context.Context) (Report, error)
}

// Exporter publishes a snapshot and returns the number of records written.
type Exporter interface {
	Export(ctx context.Context, r Report) (int, error)
}

// Runner periodically builds a Report and hands it to an Exporter.
type Runner struct {
	reports  ReportSource
	exporter Exporter
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// NewRunner creates a Runner that exports every interval.
func NewRunner(reports ReportSource, exporter Exporter, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		reports:  reports,
		exporter: exporter,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once at least one snapshot has been exported.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no score snapshot exported yet")
	}
	return nil
}

// Run exports immediately and then on every interval until ctx is
// cancelled. Failures are retried with exponential backoff from 200ms up to
// 5s before the regular schedule resumes.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("export loop started", "interval", r.interval)
	r.metrics.ExporterRunning.Set(1)
	defer r.metrics.ExporterRunning.Set(0)

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			r.logger.Info("export loop stopping", "reason", ctx.Err())
			return nil
		}

		if err := r.exportOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.metrics.ExportErrors.Inc()
			r.logger.Error("export failed", "error", err, "retry_in", backoff)
			if !retry.SleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
			continue
		}

		backoff = initialBackoff
		if !retry.SleepWithContext(ctx, r.interval) {
			return nil
		}
	}
}

func (r *Runner) exportOnce(ctx context.Context) error {
	start := time.Now()
	report, err := r.reports.Report(ctx)
	if err != nil {
		return err
	}
	n, err := r.exporter.Export(ctx, report)
	if err != nil {
		return err
	}

	r.metrics.ExportBatches.Inc()
	r.metrics.ExportedRecords.Add(float64(n))
	r.ready.Store(true)
	r.logger.Info("exported score snapshot",
		"run_id", report.RunID,
		"records", n,
		"duration", time.Since(start),
	)
	return nil
}

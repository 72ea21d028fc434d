package watch

import (
	"context"
	"sync"
	"time"

	"github.com/harshitalegal/markwatch/internal/domain/filing"
	"github.com/harshitalegal/markwatch/internal/domain/portfolio"
	"github.com/harshitalegal/markwatch/internal/infrastructure/monitoring/logging"
	"github.com/harshitalegal/markwatch/internal/infrastructure/monitoring/metrics"
	"github.com/harshitalegal/markwatch/pkg/errors"
)

// Stats summarizes one completed watch run.
type Stats struct {
	FilingsScanned int            `json:"filings_scanned"`
	PortfolioSize  int            `json:"portfolio_size"`
	AlertsByTier   map[string]int `json:"alerts_by_tier"`
	RecordsSkipped int            `json:"records_skipped"`
	Duration       time.Duration  `json:"duration"`
}

// Report is the complete outcome of a watch run: the ranked alerts, every
// record skipped as malformed, and the run statistics.  Two runs over the
// same inputs with the same options produce identical reports apart from the
// wall-clock duration stat.
type Report struct {
	Alerts  []*Alert                `json:"alerts"`
	Skipped []portfolio.RecordError `json:"skipped,omitempty"`
	Stats   Stats                   `json:"stats"`
}

// Pipeline wires the portfolio index, the matcher, and the ranker into one
// run loop.  Construct it once and reuse it across runs; it is safe for
// concurrent use because Run mutates nothing but its own locals.
type Pipeline struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics.WatchMetrics
}

// NewPipeline validates the options and assembles a Pipeline.  The metrics
// collector may be nil, in which case instrumentation is disabled.
func NewPipeline(opts Options, logger logging.Logger, m *metrics.WatchMetrics) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Pipeline{opts: opts, logger: logger, metrics: m}, nil
}

// Run scores every filing against the portfolio and returns the ranked
// report.  Malformed portfolio records are skipped and surfaced in
// Report.Skipped rather than failing the run; a nil filing in the batch is
// likewise skipped and recorded.  Matching fans out over a bounded worker
// pool; results land in per-filing slots so pool scheduling cannot influence
// report order.  Cancellation is honored between filings: a cancelled run
// returns the context error and no partial report.
func (p *Pipeline) Run(ctx context.Context, records []*portfolio.TrademarkRecord, filings []*filing.Record) (*Report, error) {
	start := time.Now()

	idx, skipped := portfolio.BuildIndex(records, portfolio.IndexOptions{
		ClassPrefilter: p.opts.ClassPrefilter,
	})
	terms := 0
	for _, rec := range idx.Records() {
		terms += len(rec.WatchTerms())
	}
	p.logger.Debug("portfolio index built",
		logging.Int("records", idx.Len()),
		logging.Int("watch_terms", terms))

	for _, re := range skipped {
		p.logger.Warn("skipping malformed portfolio record",
			logging.Int("position", re.Position),
			logging.String("mark", re.Mark),
			logging.Err(re.Err))
	}

	clean := make([]*filing.Record, 0, len(filings))
	for i, f := range filings {
		if f == nil {
			skipped = append(skipped, portfolio.RecordError{
				Position: i,
				Err:      errors.NewMalformedRecord("filing at position %d is missing", i),
			})
			continue
		}
		clean = append(clean, f)
	}

	alerts, err := p.matchAll(ctx, idx, clean)
	if err != nil {
		return nil, err
	}
	SortAlerts(alerts)

	stats := Stats{
		FilingsScanned: len(clean),
		PortfolioSize:  idx.Len(),
		AlertsByTier:   make(map[string]int, 3),
		RecordsSkipped: len(skipped),
		Duration:       time.Since(start),
	}
	for _, a := range alerts {
		stats.AlertsByTier[a.Tier.String()]++
		p.metrics.AlertRaised(a.Tier.String())
	}
	p.metrics.RecordsSkipped(len(skipped))
	p.metrics.RunCompleted(stats.Duration.Seconds())

	p.logger.Info("watch run complete",
		logging.Int("filings", stats.FilingsScanned),
		logging.Int("portfolio", stats.PortfolioSize),
		logging.Int("alerts", len(alerts)),
		logging.Int("skipped", stats.RecordsSkipped),
		logging.Duration("duration", stats.Duration))

	return &Report{Alerts: alerts, Skipped: skipped, Stats: stats}, nil
}

// matchAll fans filing-level matching out over the worker pool and collects
// the per-filing alerts.  Each filing writes into its own result slot, so the
// output depends only on the inputs, never on worker interleaving.
func (p *Pipeline) matchAll(ctx context.Context, idx *portfolio.Index, filings []*filing.Record) ([]*Alert, error) {
	if idx == nil {
		return nil, errors.New(errors.ErrCodeIndexRequired, "portfolio index is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCancelled, "watch run cancelled")
	}

	slots := make([]*Alert, len(filings))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.opts.workerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := filings[i]
				candidates := Match(f, idx, p.opts)
				slots[i] = Rank(f, candidates, p.opts)
				p.metrics.FilingScanned()
			}
		}()
	}

	var cancelled error
dispatch:
	for i := range filings {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, errors.Wrap(cancelled, errors.ErrCodeCancelled, "watch run cancelled")
	}
	if err := ctx.Err(); err != nil {
		// Cancellation raced the final dispatch; still no partial report.
		return nil, errors.Wrap(err, errors.ErrCodeCancelled, "watch run cancelled")
	}

	alerts := make([]*Alert, 0, len(filings))
	for _, a := range slots {
		if a != nil {
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

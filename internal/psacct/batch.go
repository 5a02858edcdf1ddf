package psacct

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// BatchResult summarizes one applied psacct dump.
type BatchResult struct {
	Registered int
	Skipped    int
	Rejected   int
}

// ApplyBatch resets the per-interval gauges and then registers every line of
// one dump using up to workers goroutines. The reset completes before any line
// is applied. Bad lines are logged and dropped individually.
func (r *Reconciler) ApplyBatch(ctx context.Context, host string, lines []string, workers int) (BatchResult, error) {
	if workers <= 0 {
		workers = 1
	}

	r.ResetGauges()

	var registered, skipped, rejected atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec, err := ParseLine(host, line)
			switch {
			case errors.Is(err, ErrEmptyLine):
				r.logger.Debug("skipping empty psacct line")
				skipped.Add(1)
			case err != nil:
				r.logger.Warn("illegal psacct record", "error", err)
				rejected.Add(1)
			default:
				r.RegisterRecord(rec)
				registered.Add(1)
			}
			return nil
		})
	}

	_ = g.Wait()

	res := BatchResult{
		Registered: int(registered.Load()),
		Skipped:    int(skipped.Load()),
		Rejected:   int(rejected.Load()),
	}
	r.logger.Info("applied psacct batch",
		"host", host,
		"registered", res.Registered,
		"skipped", res.Skipped,
		"rejected", res.Rejected)

	return res, ctx.Err()
}

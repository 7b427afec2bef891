package fluid

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// WarmStats summarizes a Warm run.
type WarmStats struct {
	Pairs     int // (fluid, property) pairs visited
	Available int // pairs with an interpolable grid
}

// Warm builds the interpolator of every (fluid, property) pair up front using
// at most workers goroutines (Config.WarmWorkers when workers <= 0). Pairs
// already cached are not rebuilt. It stops early when ctx is cancelled.
func (e *Engine) Warm(ctx context.Context, workers int) (WarmStats, error) {
	if workers <= 0 {
		workers = e.cfg.WarmWorkers
	}
	if workers <= 0 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var pairs, available atomic.Int64
	for _, f := range e.table.Fluids() {
		for _, p := range e.table.Properties().Keys() {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				pairs.Add(1)
				if _, err := e.cache.Get(f, p); err == nil {
					available.Add(1)
				}
				return nil
			})
		}
	}
	err := g.Wait()
	stats := WarmStats{Pairs: int(pairs.Load()), Available: int(available.Load())}
	if err != nil {
		return stats, err
	}
	logrus.Infof("Warmed interpolator cache: %d/%d pairs interpolable (%d workers)",
		stats.Available, stats.Pairs, workers)
	return stats, nil
}

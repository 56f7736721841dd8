// internal/batch/runner.go
package batch

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Run fixes every path with at most Workers files in flight and emits one
// Result per path on out, in completion order.
// Run never closes out. Per-file failures are carried in Result.Err; the
// returned error is only ever the context error.
func (r *Runner) Run(ctx context.Context, out chan<- Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, path := range r.cfg.Paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			res := r.FixOnce(path)
			res.Index = i

			select {
			case out <- res:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// RunAll runs every path and returns the results in path order.
func (r *Runner) RunAll(ctx context.Context) ([]Result, error) {
	out := make(chan Result, len(r.cfg.Paths))

	if err := r.Run(ctx, out); err != nil {
		return nil, err
	}
	close(out)

	results := make([]Result, 0, len(r.cfg.Paths))
	for res := range out {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results, nil
}

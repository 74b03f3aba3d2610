package diag

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every element of xs. It never stops at the first failure:
// when any call fails, the failures of all calls are merged in input order.
func Map[I, O any](xs []I, fn func(I) (O, error)) ([]O, error) {
	return MapOptional(xs, func(x I) (O, bool, error) {
		o, err := fn(x)
		return o, true, err
	})
}

// MapOptional is Map where a successful call may also report "no output"
// by returning ok == false. Such elements are dropped, not counted as failures.
func MapOptional[I, O any](xs []I, fn func(I) (O, bool, error)) ([]O, error) {
	var (
		out []O
		c   Collector
	)
	for _, x := range xs {
		o, ok, err := fn(x)
		if err != nil {
			c.Add(err)
			continue
		}
		if ok {
			out = append(out, o)
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type slot[O any] struct {
	out O
	ok  bool
	err error
}

// MapOptionalConcurrent behaves like MapOptional but runs up to jobs calls at
// once. Results and diagnostics are still reported in input order.
func MapOptionalConcurrent[I, O any](ctx context.Context, jobs int, xs []I, fn func(I) (O, bool, error)) ([]O, error) {
	if jobs <= 1 || len(xs) <= 1 {
		return MapOptional(xs, fn)
	}
	slots := make([]slot[O], len(xs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(xs)))
	for i, x := range xs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			o, ok, err := fn(x)
			slots[i] = slot[O]{out: o, ok: ok, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		out []O
		c   Collector
	)
	for _, s := range slots {
		if s.err != nil {
			c.Add(s.err)
			continue
		}
		if s.ok {
			out = append(out, s.out)
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package chain

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch invokes r for every input concurrently, at most limit at a time when
// limit is positive. Outputs keep the order of inputs. The first error
// cancels the remaining work.
func Batch[I, O any](ctx context.Context, r Runnable[I, O], inputs []I, limit int) ([]O, error) {
	out := make([]O, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			o, err := r.Invoke(ctx, in)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			out[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type parallel[I any] struct {
	branches map[string]Runnable[I, any]
}

// Parallel invokes every branch with the same input and collects the
// outputs by branch name.
func Parallel[I any](branches map[string]Runnable[I, any]) Runnable[I, map[string]any] {
	return parallel[I]{branches: maps.Clone(branches)}
}

func (p parallel[I]) Invoke(ctx context.Context, in I) (map[string]any, error) {
	var mu sync.Mutex
	out := make(map[string]any, len(p.branches))

	g, ctx := errgroup.WithContext(ctx)
	for name, r := range p.branches {
		g.Go(func() error {
			o, err := r.Invoke(ctx, in)
			if err != nil {
				return fmt.Errorf("branch %s: %w", name, err)
			}
			mu.Lock()
			out[name] = o
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p parallel[I]) Name() string {
	names := slices.Sorted(maps.Keys(p.branches))
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + strings.Join(Describe(p.branches[n]), " | ")
	}
	return "Parallel{" + strings.Join(parts, ", ") + "}"
}

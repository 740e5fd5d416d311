// Package parallel fans work out across a bounded pool of goroutines.
package parallel

import (
	"context"
	"iter"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the pool width used when Map is given a non-positive limit.
const DefaultLimit = 5

// Map applies fn to every input with at most limit calls in flight and yields results in
// completion order. The sequence is lazy and can be ranged over once.
//
// The first failing call cancels the context passed to the others, stops scheduling new
// inputs and is yielded as the final (zero, err) pair. Breaking out of the loop early
// cancels outstanding work. In both cases the sequence returns only after every started
// call has finished.
func Map[In, Out any](
	ctx context.Context,
	inputs []In,
	fn func(ctx context.Context, in In) (Out, error),
	limit int,
) iter.Seq2[Out, error] {
	return func(yield func(Out, error) bool) {
		if limit <= 0 {
			limit = DefaultLimit
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		group, groupCtx := errgroup.WithContext(runCtx)
		group.SetLimit(limit)

		results := make(chan Out)
		waitErr := make(chan error, 1)

		var failed atomic.Bool

		go func() {
			for _, in := range inputs {
				if groupCtx.Err() != nil {
					break
				}

				// Blocks while limit calls are in flight.
				group.Go(func() error {
					// A slot freed by a failing sibling must not start new work.
					if err := groupCtx.Err(); err != nil {
						failed.Store(true)
						return err
					}

					out, err := fn(groupCtx, in)
					if err != nil {
						failed.Store(true)
						return err
					}

					select {
					case results <- out:
						return nil
					case <-groupCtx.Done():
						failed.Store(true)
						return groupCtx.Err()
					}
				})
			}

			waitErr <- group.Wait()
			close(results)
		}()

		broke := false
		for out := range results {
			if broke || failed.Load() {
				continue
			}

			if !yield(out, nil) {
				broke = true
				cancel()
			}
		}

		err := <-waitErr
		if broke {
			return
		}

		if err == nil {
			err = ctx.Err()
		}

		if err != nil {
			var zero Out
			yield(zero, err)
		}
	}
}

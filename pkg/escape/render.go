package escape

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

type options struct {
	workers int
}

// Option configures Render.
type Option func(*options)

// WithWorkers sets the number of goroutines rows are spread across.
// Values below one mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Render validates its arguments, allocates a buffer and fills it in parallel.
// The result is identical to Calculate over the same arguments.
func Render(ctx context.Context, g Grid, v Viewport, maxIter int32, opts ...Option) ([]int32, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if maxIter < 0 {
		return nil, fmt.Errorf("%w: iteration budget %d is negative", ErrInvalidArgument, maxIter)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]int32, g.Len())
	err := CalculateParallel(ctx, out, g.Width, g.Height, v, maxIter, o.workers)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// CalculateParallel is Calculate with rows handed out to workers goroutines.
// Each row is written by exactly one worker, so no locking is needed.
//
// It stops handing out rows once ctx is done and returns ctx.Err(); the buffer
// is then partially filled. A cancellation that arrives after every row was
// handed out is not an error.
func CalculateParallel(ctx context.Context, out []int32, width, height int, v Viewport, maxIter int32, workers int) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}

	realStep := (v.MaxReal - v.MinReal) / float64(width)
	imagStep := (v.MaxImag - v.MinImag) / float64(height)

	rows := make(chan int)

	// dispatched is only read after the workers drain the closed channel.
	dispatched := 0
	go func() {
		defer close(rows)
		for i := 0; i < height; i++ {
			select {
			case rows <- i:
				dispatched++
			case <-ctx.Done():
				return
			}
		}
	}()

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range rows {
				calculateRow(out[i*width:(i+1)*width], i, v, realStep, imagStep, maxIter)
			}
		}()
	}

	wg.Wait()

	if dispatched < height {
		return ctx.Err()
	}

	return nil
}

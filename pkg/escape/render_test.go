package escape

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestRender_MatchesCalculate(t *testing.T) {
	const width, height, maxIter = 97, 61, 300

	want := make([]int32, width*height)
	Calculate(want, width, height, overview, maxIter)

	for _, workers := range []int{0, 1, 3, 8, 200} {
		got, err := Render(context.Background(), Grid{Width: width, Height: height}, overview, maxIter, WithWorkers(workers))
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}

		if len(got) != len(want) {
			t.Fatalf("workers=%d: got %d cells, want %d", workers, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("workers=%d: cell %d = %d, want %d", workers, i, got[i], want[i])
			}
		}
	}
}

func TestRender_ZeroBudget(t *testing.T) {
	got, err := Render(context.Background(), Grid{Width: 8, Height: 8}, overview, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range got {
		if c != 0 {
			t.Fatalf("cell %d = %d, want 0", i, c)
		}
	}
}

func TestRender_InvalidArguments(t *testing.T) {
	tcs := []struct {
		name    string
		g       Grid
		v       Viewport
		maxIter int32
	}{
		{"zero width", Grid{Width: 0, Height: 4}, overview, 10},
		{"negative height", Grid{Width: 4, Height: -1}, overview, 10},
		{"inverted real axis", Grid{Width: 4, Height: 4}, Viewport{MinReal: 1, MaxReal: -1, MinImag: -1, MaxImag: 1}, 10},
		{"degenerate imaginary axis", Grid{Width: 4, Height: 4}, Viewport{MinReal: -1, MaxReal: 1, MinImag: 0.5, MaxImag: 0.5}, 10},
		{"infinite bound", Grid{Width: 4, Height: 4}, Viewport{MinReal: math.Inf(-1), MaxReal: 1, MinImag: -1, MaxImag: 1}, 10},
		{"NaN bound", Grid{Width: 4, Height: 4}, Viewport{MinReal: -1, MaxReal: 1, MinImag: math.NaN(), MaxImag: 1}, 10},
		{"negative budget", Grid{Width: 4, Height: 4}, overview, -5},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(context.Background(), tc.g, tc.v, tc.maxIter)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got error %v, want ErrInvalidArgument", err)
			}
			if got != nil {
				t.Errorf("got buffer of %d cells on error", len(got))
			}
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, Grid{Width: 64, Height: 64}, overview, 100)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
}

// doneAfterDispatch reports cancellation without ever closing Done, as if the
// caller gave up after the last row was already handed out.
type doneAfterDispatch struct {
	context.Context
}

func (doneAfterDispatch) Err() error {
	return context.Canceled
}

func TestCalculateParallel_LateCancel(t *testing.T) {
	const width, height, maxIter = 40, 30, 200

	want := make([]int32, width*height)
	Calculate(want, width, height, overview, maxIter)

	got := make([]int32, width*height)
	err := CalculateParallel(doneAfterDispatch{context.Background()}, got, width, height, overview, maxIter, 4)
	if err != nil {
		t.Fatalf("every row was computed, got error %v", err)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func BenchmarkCalculate(b *testing.B) {
	const width, height = 320, 240
	out := make([]int32, width*height)

	for i := 0; i < b.N; i++ {
		Calculate(out, width, height, overview, 256)
	}
}

func BenchmarkCalculateParallel(b *testing.B) {
	const width, height = 320, 240
	out := make([]int32, width*height)

	for i := 0; i < b.N; i++ {
		if err := CalculateParallel(context.Background(), out, width, height, overview, 256, 0); err != nil {
			b.Fatal(err)
		}
	}
}

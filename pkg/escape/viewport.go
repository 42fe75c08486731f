package escape

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is wrapped by every validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// A Viewport is the rectangle of the complex plane being sampled.
type Viewport struct {
	MinReal float64 `json:"min_real"`
	MaxReal float64 `json:"max_real"`
	MinImag float64 `json:"min_imag"`
	MaxImag float64 `json:"max_imag"`
}

// Validate reports whether both axes are finite and non-degenerate.
func (v Viewport) Validate() error {
	for _, b := range []float64{v.MinReal, v.MaxReal, v.MinImag, v.MaxImag} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: viewport bound %v is not finite", ErrInvalidArgument, b)
		}
	}

	if v.MinReal >= v.MaxReal {
		return fmt.Errorf("%w: real axis [%g, %g] is empty", ErrInvalidArgument, v.MinReal, v.MaxReal)
	}
	if v.MinImag >= v.MaxImag {
		return fmt.Errorf("%w: imaginary axis [%g, %g] is empty", ErrInvalidArgument, v.MinImag, v.MaxImag)
	}

	return nil
}

// Sample returns the plane coordinates of cell (i, j) of a width x height grid.
// It uses exactly the arithmetic of Calculate.
func (v Viewport) Sample(width, height, i, j int) (re, im float64) {
	realStep := (v.MaxReal - v.MinReal) / float64(width)
	imagStep := (v.MaxImag - v.MinImag) / float64(height)

	re = v.MinReal + float64(float64(j)*realStep)
	im = v.MinImag + float64(float64(i)*imagStep)

	return re, im
}

// String formats both axis intervals.
func (v Viewport) String() string {
	return fmt.Sprintf("Re [%g, %g] Im [%g, %g]", v.MinReal, v.MaxReal, v.MinImag, v.MaxImag)
}

// A Grid is the pixel raster a Viewport is sampled onto.
type Grid struct {
	Width, Height int
}

// Validate reports whether both dimensions are at least one pixel.
func (g Grid) Validate() error {
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("%w: grid %dx%d must be at least 1x1", ErrInvalidArgument, g.Width, g.Height)
	}

	return nil
}

// Len is the number of cells in the grid.
func (g Grid) Len() int {
	return g.Width * g.Height
}

package view

import (
	"fmt"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/transforms"
	"math"
)

const (
	DefaultMaxIter = 256

	MinMaxIter = 64
	MaxMaxIter = 2048
)

// A Controller turns zoom, pan and budget changes on a fixed-size raster into
// the arguments of the next render.
type Controller struct {
	Width, Height int

	Viewport escape.Viewport
	MaxIter  int32
}

// New returns a Controller showing Overview with the default budget.
func New(width, height int) *Controller {
	return &Controller{
		Width:    width,
		Height:   height,
		Viewport: Overview,
		MaxIter:  DefaultMaxIter,
	}
}

// Grid is the raster the controller renders onto.
func (c *Controller) Grid() escape.Grid {
	return escape.Grid{Width: c.Width, Height: c.Height}
}

// PixelToPlane returns the point sampled at column x of row y.
func (c *Controller) PixelToPlane(x, y int) complex128 {
	re, im := c.Viewport.Sample(c.Width, c.Height, y, x)
	return complex(re, im)
}

// ZoomAt magnifies the view by factor, keeping the point under pixel (x, y)
// in place. Factors below one zoom out. The view is left unchanged when the
// zoom would collapse an axis below float64 resolution.
func (c *Controller) ZoomAt(x, y int, factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: zoom factor %g must be positive and finite", escape.ErrInvalidArgument, factor)
	}

	return c.apply(transforms.ScaleAbout(c.PixelToPlane(x, y), 1/factor))
}

// Pan shifts the view by whole pixels. Positive dy moves towards larger
// imaginary parts, following the row order of the raster.
func (c *Controller) Pan(dx, dy int) error {
	v := c.Viewport
	re := float64(dx) * (v.MaxReal - v.MinReal) / float64(c.Width)
	im := float64(dy) * (v.MaxImag - v.MinImag) / float64(c.Height)

	return c.apply(transforms.Translate(complex(re, im)))
}

// apply maps both corners through m and keeps the result only if it is a
// valid viewport.
func (c *Controller) apply(m transforms.Map) error {
	lo := m.Next(complex(c.Viewport.MinReal, c.Viewport.MinImag))
	hi := m.Next(complex(c.Viewport.MaxReal, c.Viewport.MaxImag))

	return c.SetViewport(escape.Viewport{
		MinReal: real(lo),
		MaxReal: real(hi),
		MinImag: imag(lo),
		MaxImag: imag(hi),
	})
}

// SetMaxIter sets the budget, clamped to [MinMaxIter, MaxMaxIter].
func (c *Controller) SetMaxIter(n int32) {
	c.MaxIter = min(max(n, MinMaxIter), MaxMaxIter)
}

// SetViewport replaces the view after validating it.
func (c *Controller) SetViewport(v escape.Viewport) error {
	if err := v.Validate(); err != nil {
		return err
	}
	c.Viewport = v

	return nil
}

// Reset returns to Overview. The budget is kept.
func (c *Controller) Reset() {
	c.Viewport = Overview
}

// Status describes the current view in one line.
func (c *Controller) Status() string {
	v := c.Viewport
	return fmt.Sprintf("Re [%.3f, %.3f]  Im [%.3f, %.3f]  iter=%d",
		v.MinReal, v.MaxReal, v.MinImag, v.MaxImag, c.MaxIter)
}

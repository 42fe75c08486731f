package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/view"
	"io"
	"log"
	"path/filepath"
	"time"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// A Case is one image to generate: a file name, a region and a budget.
type Case struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Viewport    escape.Viewport `json:"viewport"`
	MaxIter     int32           `json:"max_iter"`
}

// Validate reports a missing file name, a bad viewport or a budget below one.
func (c Case) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: case has no file name", escape.ErrInvalidArgument)
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("case %q: %w", c.Name, err)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("%w: case %q: iteration budget %d must be positive", escape.ErrInvalidArgument, c.Name, c.MaxIter)
	}

	return nil
}

// DefaultCases are the reference sample images.
func DefaultCases() []Case {
	return []Case{
		{
			Name:        "mandelbrot_case_visao_geral.png",
			Description: "Overview of the Mandelbrot set",
			Viewport:    view.Overview,
			MaxIter:     256,
		},
		{
			Name:        "mandelbrot_case_seahorse.png",
			Description: "Seahorse Valley (zoom)",
			Viewport:    view.Presets["seahorse-zoom"],
			MaxIter:     512,
		},
		{
			Name:        "mandelbrot_case_espiral.png",
			Description: "Spiral near the main bulb",
			Viewport:    view.Presets["spiral"],
			MaxIter:     1024,
		},
	}
}

// LoadCases reads a JSON array of cases.
func LoadCases(r io.Reader) ([]Case, error) {
	var cases []Case

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(&cases)
	if err != nil {
		return nil, fmt.Errorf("decoding cases: %w", err)
	}

	if len(cases) == 0 {
		return nil, errors.New("no cases")
	}

	for _, c := range cases {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	return cases, nil
}

// A Runner renders cases into PNG files under Dir.
type Runner struct {
	Dir           string
	Width, Height int
	Workers       int

	// Flip puts the largest imaginary part at the top of each image.
	Flip bool

	Log *log.Logger
}

// Run renders every case in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, cases []Case) error {
	width, height := r.Width, r.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}

	logger := r.Log
	if logger == nil {
		logger = log.Default()
	}

	grid := escape.Grid{Width: width, Height: height}
	for _, c := range cases {
		if err := c.Validate(); err != nil {
			return err
		}

		logger.Printf("[%s]", c.Description)
		start := time.Now()

		counts, err := escape.Render(ctx, grid, c.Viewport, c.MaxIter, escape.WithWorkers(r.Workers))
		if err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}

		img := palette.Image(counts, width, height, c.MaxIter, r.Flip)
		err = palette.SavePNG(filepath.Join(r.Dir, c.Name), img)
		if err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}

		logger.Printf("  -> %s  (%dx%d, max_iter=%d) in %s", c.Name, width, height, c.MaxIter, time.Since(start).Round(time.Millisecond))
	}

	return nil
}

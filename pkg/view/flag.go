package view

import (
	"fmt"
	"github.com/spf13/pflag"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"strconv"
	"strings"
)

// ViewportValue is a flag holding a viewport, given either as a preset name
// or as "minReal,maxReal,minImag,maxImag".
type ViewportValue struct {
	V *escape.Viewport
}

// NewViewportValue stores def in v and returns a flag value writing to v.
func NewViewportValue(def escape.Viewport, v *escape.Viewport) *ViewportValue {
	*v = def
	return &ViewportValue{V: v}
}

// String formats the viewport the way Set parses it.
func (f *ViewportValue) String() string {
	if f.V == nil {
		return ""
	}

	v := *f.V
	return fmt.Sprintf("%g,%g,%g,%g", v.MinReal, v.MaxReal, v.MinImag, v.MaxImag)
}

// Set parses s with ParseViewport.
func (f *ViewportValue) Set(s string) error {
	v, err := ParseViewport(s)
	if err != nil {
		return err
	}
	*f.V = v

	return nil
}

// Type names the flag value in usage output.
func (f *ViewportValue) Type() string {
	return "viewport"
}

var _ pflag.Value = &ViewportValue{}

// ParseViewport reads a preset name or four comma-separated bounds.
func ParseViewport(s string) (escape.Viewport, error) {
	s = strings.TrimSpace(s)
	if v, found := Presets[s]; found {
		return v, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return escape.Viewport{}, fmt.Errorf("viewport %q: want a preset (%s) or minReal,maxReal,minImag,maxImag",
			s, strings.Join(PresetNames(), ", "))
	}

	var bounds [4]float64
	for i, p := range parts {
		b, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return escape.Viewport{}, fmt.Errorf("viewport %q: %w", s, err)
		}
		bounds[i] = b
	}

	v := escape.Viewport{MinReal: bounds[0], MaxReal: bounds[1], MinImag: bounds[2], MaxImag: bounds[3]}
	if err := v.Validate(); err != nil {
		return escape.Viewport{}, fmt.Errorf("viewport %q: %w", s, err)
	}

	return v, nil
}

package view

import (
	"fmt"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"sort"
)

// Overview frames the whole set and is where a Controller starts.
var Overview = escape.Viewport{MinReal: -2.5, MaxReal: 1.0, MinImag: -1.2, MaxImag: 1.2}

// Presets are named regions of the Mandelbrot set.
var Presets = map[string]escape.Viewport{
	"overview": Overview,

	"seahorse-zoom": {MinReal: -0.77, MaxReal: -0.73, MinImag: 0.05, MaxImag: 0.09},

	// Spiral near the main cardioid.
	"spiral": {MinReal: -0.088, MaxReal: -0.064, MinImag: 0.654, MaxImag: 0.672},

	// Dense filaments and repeating "seahorse" curls.
	"seahorse-valley": {MinReal: -0.8, MaxReal: -0.7, MinImag: 0.05, MaxImag: 0.15},

	// Large bulb with trunk-like tendrils.
	"elephant-valley": {MinReal: -1.85, MaxReal: -1.75, MinImag: -0.10, MaxImag: -0.02},

	// Small copy of the set with tight spiral arms.
	"spiral-minibrot": {MinReal: -0.7435, MaxReal: -0.7420, MinImag: 0.1310, MaxImag: 0.1325},

	"triple-spiral": {MinReal: -0.7480, MaxReal: -0.7450, MinImag: 0.0950, MaxImag: 0.0980},

	"valley-of-the-dragon": {MinReal: -0.7400, MaxReal: -0.7350, MinImag: 0.1800, MaxImag: 0.1850},

	// Self-similar copy inside a spiral arm.
	"minibrot-in-mini-spiral": {MinReal: -1.7390, MaxReal: -1.7375, MinImag: -0.0235, MaxImag: -0.0220},
}

// Preset looks up a named region.
func Preset(name string) (escape.Viewport, error) {
	v, found := Presets[name]
	if !found {
		return escape.Viewport{}, fmt.Errorf("unknown preset %q", name)
	}

	return v, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

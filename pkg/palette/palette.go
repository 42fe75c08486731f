package palette

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Inside is the color of points that did not escape.
var Inside = color.RGBA{A: 0xff}

// Color maps an escape time onto a blue ramp that is logarithmic in the count.
func Color(count, maxIter int32) color.RGBA {
	if count >= maxIter {
		return Inside
	}

	t := math.Log1p(float64(count)) / math.Log1p(float64(maxIter))
	t = math.Min(math.Max(t, 0.0), 1.0)

	return color.RGBA{
		R: uint8(t * 100),
		G: uint8(t * 180),
		B: uint8(t * 255),
		A: 0xff,
	}
}

// Image colors a row-major buffer of escape times.
//
// Buffer row 0 becomes image row 0, so the image shows the smallest imaginary
// part at the top. flip puts the largest imaginary part at the top instead.
func Image(counts []int32, width, height int, maxIter int32, flip bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for i, c := range counts[:width*height] {
		x := i % width
		y := i / width
		if flip {
			y = height - 1 - y
		}

		img.SetRGBA(x, y, Color(c, maxIter))
	}

	return img
}

// WritePNG encodes img to w as a PNG.
func WritePNG(w io.Writer, img image.Image) error {
	err := png.Encode(w, img)
	if err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	return nil
}

// SavePNG writes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WritePNG(f, img)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

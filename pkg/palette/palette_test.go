package palette

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestColor(t *testing.T) {
	tcs := []struct {
		name           string
		count, maxIter int32
		want           color.RGBA
	}{
		{"zero count is black", 0, 255, color.RGBA{A: 0xff}},
		{"inside", 255, 255, Inside},
		{"past budget is inside", 300, 255, Inside},
		{"zero budget is inside", 0, 0, Inside},
		// log1p(7)/log1p(255) = log(8)/log(256) = 0.375
		{"log scale", 7, 255, color.RGBA{R: 37, G: 67, B: 95, A: 0xff}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := Color(tc.count, tc.maxIter); got != tc.want {
				t.Errorf("Color(%d, %d) = %v, want %v", tc.count, tc.maxIter, got, tc.want)
			}
		})
	}
}

func TestColor_Monotonic(t *testing.T) {
	const maxIter = 1000

	prev := Color(0, maxIter)
	for c := int32(1); c < maxIter; c++ {
		got := Color(c, maxIter)
		if got.B < prev.B {
			t.Fatalf("blue channel decreased at count %d: %d < %d", c, got.B, prev.B)
		}
		prev = got
	}
}

func TestImage_Orientation(t *testing.T) {
	// Row 0 escaped, row 1 is inside.
	counts := []int32{3, 3, 10, 10}

	img := Image(counts, 2, 2, 10, false)
	if got := img.RGBAAt(0, 1); got != Inside {
		t.Errorf("unflipped row 1 = %v, want inside", got)
	}
	if got := img.RGBAAt(1, 0); got == Inside {
		t.Errorf("unflipped row 0 is inside")
	}

	flipped := Image(counts, 2, 2, 10, true)
	if got := flipped.RGBAAt(0, 0); got != Inside {
		t.Errorf("flipped row 0 = %v, want inside", got)
	}
	if got := flipped.RGBAAt(1, 1); got != img.RGBAAt(1, 0) {
		t.Errorf("flipped row 1 = %v, want %v", got, img.RGBAAt(1, 0))
	}
}

func TestSavePNG(t *testing.T) {
	counts := make([]int32, 6*4)
	for i := range counts {
		counts[i] = int32(i)
	}
	img := Image(counts, 6, 4, 20, false)

	path := filepath.Join(t.TempDir(), "nested", "out.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("decoded bounds %v, want 6x4", b)
	}

	r, g, b, _ := decoded.At(5, 3).RGBA()
	if r|g|b != 0 {
		t.Errorf("count 23 >= 20 should be black, got %v", decoded.At(5, 3))
	}
}

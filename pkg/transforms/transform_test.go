package transforms

import "testing"

func TestOrbit_Escapes(t *testing.T) {
	got := Orbit(Quadratic{C: 1}, 0, 10, 2)
	want := []complex128{1, 2, 5}

	if len(got) != len(want) {
		t.Fatalf("got orbit %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("iterate %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOrbit_Bounded(t *testing.T) {
	got := Orbit(Quadratic{C: -1}, 0, 7, 2)
	if len(got) != 7 {
		t.Fatalf("got %d iterates, want 7", len(got))
	}
	for i, z := range got {
		want := complex128(-1)
		if i%2 == 1 {
			want = 0
		}
		if z != want {
			t.Errorf("iterate %d: got %v, want %v", i, z, want)
		}
	}
}

func TestOrbit_ZeroSteps(t *testing.T) {
	if got := Orbit(Quadratic{C: 3}, 0, 0, 2); len(got) != 0 {
		t.Errorf("got %v, want empty orbit", got)
	}
}

func TestLinear(t *testing.T) {
	tcs := []struct {
		name string
		m    Linear
		z    complex128
		want complex128
	}{
		{"scale about point", ScaleAbout(complex(1, 1), 0.5), complex(3, 1), complex(2, 1)},
		{"scale keeps fixed point", ScaleAbout(complex(-0.5, 0.25), 4), complex(-0.5, 0.25), complex(-0.5, 0.25)},
		{"translate", Translate(complex(0.25, -1)), complex(1, 1), complex(1.25, 0)},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Next(tc.z); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

// With C fixed and the start point varied, Quadratic is the quadratic Julia map.
func TestQuadratic_JuliaStart(t *testing.T) {
	m := Quadratic{C: -1}

	got := Orbit(m, 1, 4, 2)
	want := []complex128{0, -1, 0, -1}
	if len(got) != len(want) {
		t.Fatalf("start 1: got orbit %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("start 1: iterate %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if got := Orbit(m, 2, 4, 2); len(got) != 1 || got[0] != 3 {
		t.Errorf("start 2: got orbit %v, want [3]", got)
	}
}

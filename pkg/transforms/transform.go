package transforms

import "math/cmplx"

// A Map iterates a point of the complex plane.
type Map interface {
	Next(complex128) complex128
}

// Orbit returns the first n iterates of m starting from z0, stopping early
// after the first iterate whose magnitude exceeds radius.
func Orbit(m Map, z0 complex128, n int, radius float64) []complex128 {
	result := make([]complex128, 0, n)

	z := z0
	for i := 0; i < n; i++ {
		z = m.Next(z)
		result = append(result, z)

		if cmplx.Abs(z) > radius {
			break
		}
	}

	return result
}

var (
	_ Map = Quadratic{}
	_ Map = Linear{}
)

package transforms

// Quadratic is z² + C, the map whose parameter plane is the Mandelbrot set.
type Quadratic struct {
	C complex128
}

// Next returns z² + C.
func (q Quadratic) Next(z complex128) complex128 {
	return z*z + q.C
}

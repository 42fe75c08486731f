package escape

// Radius2 is the squared escape radius of z²+c.
const Radius2 = 4.0

// Evaluate returns the escape time of c = re + im*i.
//
// The orbit starts at z = 0. The value returned is the index of the first
// step whose new iterate has |z|² strictly greater than Radius2, or maxIter
// if the orbit stays bounded for maxIter steps.
func Evaluate(re, im float64, maxIter int32) int32 {
	zr, zi := 0.0, 0.0

	for iter := int32(0); iter < maxIter; iter++ {
		// Both components come from the previous iterate.
		zr, zi = float64(zr*zr)-float64(zi*zi)+re, float64(2*zr*zi)+im

		if float64(zr*zr)+float64(zi*zi) > Radius2 {
			return iter
		}
	}

	return maxIter
}

// Calculate fills out in row-major order with the escape time of every
// sample point of the width x height grid laid over v.
//
// Row 0 samples v.MinImag. Nothing is validated: zero sizes write nothing and
// out must hold at least width*height values.
func Calculate(out []int32, width, height int, v Viewport, maxIter int32) {
	realStep := (v.MaxReal - v.MinReal) / float64(width)
	imagStep := (v.MaxImag - v.MinImag) / float64(height)

	for i := 0; i < height; i++ {
		calculateRow(out[i*width:(i+1)*width], i, v, realStep, imagStep, maxIter)
	}
}

func calculateRow(row []int32, i int, v Viewport, realStep, imagStep float64, maxIter int32) {
	im := v.MinImag + float64(float64(i)*imagStep)

	for j := range row {
		re := v.MinReal + float64(float64(j)*realStep)
		row[j] = Evaluate(re, im, maxIter)
	}
}

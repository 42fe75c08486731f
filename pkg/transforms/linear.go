package transforms

// Linear is z*Multiply + Add. With a real Multiply it scales about the fixed
// point Add/(1-Multiply); with Multiply == 1 it translates.
type Linear struct {
	Multiply complex128
	Add      complex128
}

// Next returns z*Multiply + Add.
func (l Linear) Next(z complex128) complex128 {
	return z*l.Multiply + l.Add
}

// ScaleAbout returns the map that scales the plane by factor around p.
func ScaleAbout(p complex128, factor float64) Linear {
	f := complex(factor, 0)
	return Linear{Multiply: f, Add: p * (1 - f)}
}

// Translate returns the map that shifts the plane by d.
func Translate(d complex128) Linear {
	return Linear{Multiply: 1, Add: d}
}

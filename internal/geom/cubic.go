package geom

// Cubic is a cubic polynomial a + b*t + c*t^2 + d*t^3.
type Cubic struct {
	A float64
	B float64
	C float64
	D float64
}

// CubicHermite fits the unique cubic through the two-point boundary
// conditions p(0)=p0, p'(0)=v0, p(horizon)=p1, p'(horizon)=v1. There is
// no acceleration constraint. A non-positive horizon degenerates to the
// linear polynomial p0 + v0*t.
func CubicHermite(p0, v0, p1, v1, horizon float64) Cubic {
	if horizon <= 0 {
		return Cubic{A: p0, B: v0}
	}
	t2 := horizon * horizon
	t3 := t2 * horizon
	return Cubic{
		A: p0,
		B: v0,
		C: (3.0*(p1-p0) - (2.0*v0+v1)*horizon) / t2,
		D: (2.0*(p0-p1) + (v0+v1)*horizon) / t3,
	}
}

// Eval returns the polynomial value at t.
func (c Cubic) Eval(t float64) float64 {
	return c.A + t*(c.B+t*(c.C+t*c.D))
}

// Derivative returns the first derivative at t.
func (c Cubic) Derivative(t float64) float64 {
	return c.B + t*(2.0*c.C+t*3.0*c.D)
}

// SecondDerivative returns the second derivative at t.
func (c Cubic) SecondDerivative(t float64) float64 {
	return 2.0*c.C + 6.0*c.D*t
}

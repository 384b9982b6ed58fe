package slrcore

import "gonum.org/v1/gonum/mat"

// Polynomial is a fitted least-squares polynomial, coefficients
// ordered lowest-degree-first: p(x) = coef[0] + coef[1]*x + ... .
type Polynomial struct {
	coef []float64
}

// Degree returns the polynomial's degree.
func (p Polynomial) Degree() int { return len(p.coef) - 1 }

// Eval evaluates p at x via Horner's method.
func (p Polynomial) Eval(x float64) float64 {
	if len(p.coef) == 0 {
		return 0
	}
	v := p.coef[len(p.coef)-1]
	for i := len(p.coef) - 2; i >= 0; i-- {
		v = v*x + p.coef[i]
	}
	return v
}

// PolyFit fits a least-squares polynomial of the given degree to
// (xs[i], ys[i]) pairs. Solving the normal equations directly
// (Q=A*A', x=Q^-1*Ay) becomes ill-conditioned at the degree-9 fits the
// residual pipeline needs; gonum's QR solve is the
// ecosystem-standard, numerically stable replacement.
func PolyFit(xs, ys []float64, degree int) (Polynomial, Status) {
	n := len(xs)
	if n == 0 || n != len(ys) || degree < 0 {
		return Polynomial{}, DataSizeMismatch
	}
	if n < degree+1 {
		degree = n - 1
	}

	design := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		p := 1.0
		for j := 0; j <= degree; j++ {
			design.Set(i, j, p)
			p *= xs[i]
		}
	}
	target := mat.NewVecDense(n, ys)

	var qr mat.QR
	qr.Factorize(design)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, target); err != nil {
		return Polynomial{}, DataSizeMismatch
	}

	out := make([]float64, degree+1)
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	return Polynomial{coef: out}, NotError
}

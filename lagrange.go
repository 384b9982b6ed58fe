package slrcore

// LagrangeInterp evaluates a degree-d Lagrange interpolant of a
// vector-valued table y_k = f(x_k) at abscissa x. degree must be
// odd (9 or 15 in practice; Lagrange9 is degree 9, i.e. a 10-sample
// window, see cpf.go). xs must be strictly increasing, ys must be the
// same length as xs, and all ys rows must share one arity.
//
// The algorithm picks the contiguous window of degree+1 samples whose
// midpoint lies closest to x, preferring the window that keeps x
// strictly inside its central interval, then evaluates the Lagrange
// sum directly over that window. It reports NotInTheMiddle when the
// chosen window had to be pushed against either end of the table, so x
// ends up off-centre.
func LagrangeInterp(xs []float64, ys [][]float64, x float64, degree int) ([]float64, Status) {
	n := len(xs)
	if n == 0 || len(ys) != n {
		return nil, DataSizeMismatch
	}
	for _, row := range ys {
		if len(row) == 0 {
			return nil, DataSizeMismatch
		}
	}
	if x < xs[0] || x > xs[n-1] {
		return nil, XOutOfBounds
	}

	window := degree + 1
	if window > n {
		window = n
	}

	// Index of the sample nearest x; the window is centred on it.
	centre := 0
	best := abs(xs[0] - x)
	for i := 1; i < n; i++ {
		if d := abs(xs[i] - x); d < best {
			best = d
			centre = i
		}
	}

	start := centre - window/2
	// An even window has two middle samples; when x lies above the
	// nearest one, shift right so x falls between them.
	if window%2 == 0 && x > xs[centre] {
		start++
	}
	notCentred := false
	if start < 0 {
		start = 0
		notCentred = true
	} else if start+window > n {
		start = n - window
		notCentred = true
	}
	end := start + window // exclusive

	// Not centred unless x sits within the window's central interval.
	if mid := start + window/2; !notCentred && window%2 == 0 && (x < xs[mid-1] || x > xs[mid]) {
		notCentred = true
	}

	arity := len(ys[0])
	out := make([]float64, arity)
	for k := start; k < end; k++ {
		l := 1.0
		for j := start; j < end; j++ {
			if j == k {
				continue
			}
			l *= (x - xs[j]) / (xs[k] - xs[j])
		}
		for a := 0; a < arity; a++ {
			out[a] += l * ys[k][a]
		}
	}

	if notCentred {
		return out, NotInTheMiddle
	}
	return out, NotError
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

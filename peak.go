package slrcore

import "math"

// PeakDefaults are the reference parameters for GaussianPeak when a
// caller doesn't need to override them.
const (
	PeakDefaultSigmaPs = 25.0
	PeakDefaultWidthPs = 200.0
	PeakDefaultStepPs  = 8.0
)

// GaussianPeak refines a seed location p0 into the abscissa of the
// kernel-density peak of residuals. Returns ok=false on
// degenerate input: no residuals, or a non-positive step or width.
func GaussianPeak(residuals []float64, p0, sigma, width, step float64) (peak float64, ok bool) {
	if len(residuals) == 0 || step <= 0 || width <= 0 {
		return 0, false
	}

	n := int(width/step+0.5) + 1
	centre := n / 2
	xs := make([]float64, n)
	ys := make([]float64, n)
	for k := 0; k < n; k++ {
		xs[k] = p0 - float64(centre+1)*step + float64(k)*step
		ys[k] = gaussianSum(residuals, xs[k], sigma)
	}

	kStar := 0
	for k := 1; k < n; k++ {
		if ys[k] > ys[kStar] {
			kStar = k
		}
	}

	fineStep := step / 10
	xFine, yFine := xs[kStar], ys[kStar]
	for d := -9; d <= 9; d++ {
		x := xs[kStar] + float64(d)*fineStep
		y := gaussianSum(residuals, x, sigma)
		if y > yFine {
			yFine = y
			xFine = x
		}
	}
	if yFine <= 0 {
		return 0, false
	}

	norm := 100.0 / yFine
	for k := range ys {
		ys[k] *= norm
	}

	nMaxima := countLocalMaxima(ys, kStar, 50.0)
	if nMaxima == 0 {
		return 0, false
	}
	if nMaxima == 1 {
		return xFine, true
	}

	var px, py []float64
	for k := range ys {
		if ys[k] >= 40.0 {
			px = append(px, xs[k])
			py = append(py, ys[k])
		}
	}
	poly, st := PolyFit(px, py, 4)
	if st.Fatal() {
		return 0, false
	}

	best := px[0]
	bestY := poly.Eval(best)
	for _, x := range px {
		if y := poly.Eval(x); y > bestY {
			bestY = y
			best = x
		}
	}

	c := poly.coef
	deriv1 := func(x float64) float64 {
		return c[1] + 2*c[2]*x + 3*c[3]*x*x + 4*c[4]*x*x*x
	}
	deriv2 := func(x float64) float64 {
		return 2*c[2] + 6*c[3]*x + 12*c[4]*x*x
	}

	x := best
	for i := 0; i < 4; i++ {
		d2 := deriv2(x)
		if d2 == 0 {
			break
		}
		x -= deriv1(x) / d2
	}
	return x, true
}

func gaussianSum(residuals []float64, x, sigma float64) float64 {
	var s float64
	for _, r := range residuals {
		z := (x - r) / sigma
		s += math.Exp(-z * z / 2)
	}
	return s
}

// countLocalMaxima counts distinct local maxima within the
// half-maximum (>=50, after normalisation) region, walking outward
// from kStar in both directions. The peak at kStar counts once; each
// place where the outward walk turns from falling to rising counts
// one more.
func countLocalMaxima(ys []float64, kStar int, halfMax float64) int {
	count := 1 // the central peak at kStar always counts
	falling := true
	for k := kStar + 1; k < len(ys) && ys[k] >= halfMax; k++ {
		if falling && ys[k] > ys[k-1] {
			count++
			falling = false
		} else if !falling && ys[k] < ys[k-1] {
			falling = true
		}
	}
	falling = true
	for k := kStar - 1; k >= 0 && ys[k] >= halfMax; k-- {
		if falling && ys[k] > ys[k+1] {
			count++
			falling = false
		} else if !falling && ys[k] < ys[k+1] {
			falling = true
		}
	}
	return count
}

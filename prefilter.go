package slrcore

// WindowPrefilter returns the indices of residuals falling in the
// inclusive [lower, upper] band. Fails with an empty result
// when residuals is empty or upper <= lower.
func WindowPrefilter(residuals []float64, upper, lower float64) []int {
	if len(residuals) == 0 || upper <= lower {
		return nil
	}
	var out []int
	for i, r := range residuals {
		if r >= lower && r <= upper {
			out = append(out, i)
		}
	}
	return out
}

// HistogramPrefilterParams configures the depth-based histogram
// prefilter.
type HistogramPrefilterParams struct {
	BinSize    float64 // time-binning window, seconds
	Depth      float64 // range-gate depth, same units as residuals
	MinPhotons int     // minimum column count to keep expanding
}

// HistogramPrefilter splits (t, r) into time bins, and within each bin
// builds a histogram of r over [min(r), max(r)], finds the tallest
// column and expands left/right while adjacent columns meet
// MinPhotons, returning the indices (into the original slices) that
// fall in the accepted contiguous column range.
func HistogramPrefilter(t, r []float64, p HistogramPrefilterParams) []int {
	var accepted []int
	for _, b := range binTimeRanges(t, p.BinSize) {
		accepted = append(accepted, histogramPrefilterBin(r, b[0], b[1], p)...)
	}
	return accepted
}

func histogramPrefilterBin(r []float64, start, end int, p HistogramPrefilterParams) []int {
	if end <= start {
		return nil
	}
	bin := r[start:end]
	min, max := bin[0], bin[0]
	for _, v := range bin {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max <= min || p.Depth <= 0 {
		return nil
	}

	nbins := int((max - min) / p.Depth)
	if nbins < 1 {
		nbins = 1
	}
	hist := Histogram(bin, min, max, nbins)

	tallest := 0
	for i := 1; i < len(hist); i++ {
		if hist[i].Count > hist[tallest].Count {
			tallest = i
		}
	}

	lo, hi := tallest, tallest
	for lo > 0 && hist[lo-1].Count >= p.MinPhotons {
		lo--
	}
	for hi < len(hist)-1 && hist[hi+1].Count >= p.MinPhotons {
		hi++
	}

	loBound, hiBound := hist[lo].Lo, hist[hi].Hi
	var out []int
	for i, v := range bin {
		if v >= loBound && v <= hiBound {
			out = append(out, start+i)
		}
	}
	return out
}

// HistogramPrefilterMultiDivision divides Depth and MinPhotons
// uniformly across `divisions` passes, accumulating the union of
// accepted indices from each.
func HistogramPrefilterMultiDivision(t, r []float64, p HistogramPrefilterParams, divisions int) []int {
	if divisions <= 0 {
		divisions = 1
	}
	seen := make(map[int]bool)
	var out []int
	for d := 1; d <= divisions; d++ {
		dp := p
		dp.Depth = p.Depth / float64(d)
		dp.MinPhotons = p.MinPhotons / d
		if dp.MinPhotons < 1 {
			dp.MinPhotons = 1
		}
		for _, idx := range HistogramPrefilter(t, r, dp) {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	return out
}

// HistogramPostfilter fits a degree-9 polynomial to the whole (t, r)
// series and accepts indices where |r - P(t)| <= 1.5*depth.
func HistogramPostfilter(t, r []float64, depth float64) ([]int, Status) {
	poly, st := PolyFit(t, r, 9)
	if st.Fatal() {
		return nil, st
	}
	threshold := 1.5 * depth
	var out []int
	for i := range t {
		if abs(r[i]-poly.Eval(t[i])) <= threshold {
			out = append(out, i)
		}
	}
	return out, NotError
}

package slrcore

// BinRanges exposes the time-binning rule to callers that want to
// fan the per-bin statistics out across a worker pool themselves;
// AggregateResidualStats uses the same rule internally but runs bins
// sequentially.
func BinRanges(t []float64, binSize float64) [][2]int {
	return binTimeRanges(t, binSize)
}

// binTimeRanges splits n time-tagged samples into contiguous bins: a
// bin accumulates samples while (t_i - t_start_of_bin) <= binSize, and
// closes (possibly short) when the next sample would exceed it or the
// sequence ends. Returns the [start,end) index range of each bin.
func binTimeRanges(t []float64, binSize float64) [][2]int {
	var bins [][2]int
	n := len(t)
	i := 0
	for i < n {
		start := i
		tStart := t[i]
		j := i + 1
		for j < n && t[j]-tStart <= binSize {
			j++
		}
		bins = append(bins, [2]int{start, j})
		i = j
	}
	return bins
}

// DetrendBins fits a degree-`degree` polynomial to each time bin of
// (t, r) and replaces each residual with r_i - P(t_i). The
// final bin is always fit with degree 9 regardless of `degree`,
// matching the long-standing trailing-bin convention rather than
// normalising it away. Output has the same length and time tags as
// the input.
func DetrendBins(t, r []float64, binSize float64, degree int) ([]float64, Status) {
	if len(t) != len(r) || len(t) == 0 {
		return nil, DataSizeMismatch
	}

	out := make([]float64, len(r))
	bins := binTimeRanges(t, binSize)
	for bi, b := range bins {
		start, end := b[0], b[1]
		bt := t[start:end]
		br := r[start:end]
		binDegree := degree
		if bi == len(bins)-1 {
			binDegree = 9
		}
		poly, st := PolyFit(bt, br, binDegree)
		if st.Fatal() {
			return nil, st
		}
		for k := start; k < end; k++ {
			out[k] = r[k] - poly.Eval(t[k])
		}
	}
	return out, NotError
}

package slrcore

// HistogramBin is one fixed-width bin of a 1-D histogram: a count and
// its half-open interval [Lo, Hi).
type HistogramBin struct {
	Count int
	Lo    float64
	Hi    float64
}

// Histogram splits [min,max] into nbins equal-width half-open bins and
// counts how many values fall into each. Values equal to max are
// counted in the last bin (closing the final half-open interval).
func Histogram(values []float64, min, max float64, nbins int) []HistogramBin {
	bins := make([]HistogramBin, nbins)
	width := (max - min) / float64(nbins)
	for i := range bins {
		bins[i].Lo = min + float64(i)*width
		bins[i].Hi = min + float64(i+1)*width
	}
	if width <= 0 {
		return bins
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= nbins {
			idx = nbins - 1
		}
		bins[idx].Count++
	}
	return bins
}

package slrcore

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// BinStats is one convergence phase's result (RF*RMS or 1*RMS) for a
// single bin.
type BinStats struct {
	Iterations     int
	Mean           float64
	RMS            float64
	Skew           float64
	ExcessKurtosis float64
	Peak           float64
	Accepted       int
	Rejected       int
	AcceptedPct    float64
	AcceptMask     []bool
	Status         Status
}

// BinResult pairs the two robust-fit phases for one bin.
type BinResult struct {
	RFRMS  BinStats
	OneRMS BinStats
}

// robustFit runs the iterative rejection-band convergence loop shared
// by both statistic phases: repeatedly recentre on the mean of samples
// within the current threshold, shrink/grow the threshold from the
// new RMS, and stop when the mean stops moving by more than tol.
func robustFit(x []float64, mu0, r0, tol float64, thresholdFactor func(rms float64) float64, rejectedStatus, notConvergedStatus Status) ([]bool, float64, float64, int, Status) {
	mu := mu0
	r := r0
	lastMean := math.Inf(1)
	mask := make([]bool, len(x))

	for iter := 1; iter <= 20; iter++ {
		var s, s2 float64
		n := 0
		for i, v := range x {
			d := v - mu
			if abs(d) <= r {
				s += d
				s2 += d * d
				mask[i] = true
				n++
			} else {
				mask[i] = false
			}
		}
		if n == 0 {
			return mask, mu, 0, iter, rejectedStatus
		}
		delta := s / float64(n)
		newMu := mu + delta
		rms := math.Sqrt(s2/float64(n) - delta*delta)
		if rms < 0 {
			rms = 0
		}
		converged := abs(newMu-lastMean) < tol
		lastMean = newMu
		mu = newMu
		r = thresholdFactor(rms)
		if converged {
			return mask, mu, rms, iter, NotError
		}
	}
	// Non-convergence invalidates the acceptance state: a failed bin
	// accepts nothing.
	for i := range mask {
		mask[i] = false
	}
	return mask, mu, 0, 20, notConvergedStatus
}

// ComputeBinStats runs both robust-fit phases over one bin's
// residual sequence x, with rejection factor rf and convergence
// tolerance tol.
func ComputeBinStats(x []float64, rf, tol float64) BinResult {
	var result BinResult

	mask1, mu1, rms1, iters1, st1 := robustFit(x, 0, math.Inf(1), tol,
		func(rms float64) float64 { return rf * rms },
		RejectedRFRMS, NotConvergedRFRMS)

	result.RFRMS = finishBinStats(x, mask1, mu1, rms1, iters1, st1)
	if result.RFRMS.Status == NotError {
		if pk, ok := GaussianPeak(acceptedValues(x, mask1), mu1, PeakDefaultSigmaPs, PeakDefaultWidthPs, PeakDefaultStepPs); ok {
			result.RFRMS.Peak = pk
		} else {
			result.RFRMS.Status = PeakCalcFailedRFRMS
			result.RFRMS.rejectAll()
		}
	}

	mask2, mu2, rms2, iters2, st2 := robustFit(x, mu1, rms1, tol,
		func(rms float64) float64 { return rms },
		RejectedOneRMS, NotConvergedOneRMS)

	result.OneRMS = finishBinStats(x, mask2, mu2, rms2, iters2, st2)
	if result.OneRMS.Status == NotError {
		if pk, ok := GaussianPeak(acceptedValues(x, mask2), mu2, PeakDefaultSigmaPs, PeakDefaultWidthPs, PeakDefaultStepPs); ok {
			result.OneRMS.Peak = pk
		} else {
			result.OneRMS.Status = PeakCalcFailedOneRMS
			result.OneRMS.rejectAll()
		}
	}

	return result
}

// rejectAll clears the acceptance state; a failed bin contributes
// only rejected counts and an all-false mask.
func (bs *BinStats) rejectAll() {
	for i := range bs.AcceptMask {
		bs.AcceptMask[i] = false
	}
	bs.Accepted = 0
	bs.Rejected = len(bs.AcceptMask)
	bs.AcceptedPct = 0
}

func acceptedValues(x []float64, mask []bool) []float64 {
	var out []float64
	for i, v := range x {
		if mask[i] {
			out = append(out, v)
		}
	}
	return out
}

func finishBinStats(x []float64, mask []bool, mu, rms float64, iters int, st Status) BinStats {
	bs := BinStats{Iterations: iters, Mean: mu, RMS: rms, AcceptMask: mask, Status: st}
	for _, ok := range mask {
		if ok {
			bs.Accepted++
		} else {
			bs.Rejected++
		}
	}
	if len(mask) > 0 {
		bs.AcceptedPct = 100 * float64(bs.Accepted) / float64(len(mask))
	}
	if st != NotError {
		return bs
	}

	// c2/c3/c4 are the raw central moments about the converged mean;
	// gonum's stat.MomentAbout computes exactly that
	// population moment (divided by N, not N-1, and with no bias
	// correction).
	accepted := acceptedValues(x, mask)
	c2 := stat.MomentAbout(2, accepted, mu, nil)
	c3 := stat.MomentAbout(3, accepted, mu, nil)
	c4 := stat.MomentAbout(4, accepted, mu, nil)
	if c2 > 0 {
		bs.Skew = c3 / math.Pow(c2, 1.5)
		bs.ExcessKurtosis = c4/(c2*c2) - 3
	}
	return bs
}

// AggregateTotals is one phase's aggregate over all bins of a
// session: arithmetic means of the successful bins' statistics, plus
// accepted/rejected sums and the concatenated acceptance mask. Failed
// bins contribute only rejected counts and an all-false mask segment.
type AggregateTotals struct {
	MeanIters      float64
	Mean           float64
	RMS            float64
	Skew           float64
	ExcessKurtosis float64
	Peak           float64
	Accepted       int
	Rejected       int
	AcceptedPct    float64
	AcceptMask     []bool
}

// AggregatedStats is the residual statistics aggregator's output:
// per-bin results plus the RF*RMS and 1*RMS totals maintained in
// parallel.
type AggregatedStats struct {
	Bins   []BinResult
	RFRMS  AggregateTotals
	OneRMS AggregateTotals
	Status Status
}

// AggregateResidualStats splits t/r into time bins (the same rule as
// DetrendBins) and runs ComputeBinStats per bin, then aggregates both
// statistic phases across bins.
func AggregateResidualStats(t, r []float64, binSize, rf, tol float64) AggregatedStats {
	var agg AggregatedStats
	if len(t) != len(r) || len(t) == 0 {
		agg.Status = StatsCalcFailed
		return agg
	}

	var rfAcc, oneAcc totalsAccum
	failed := 0
	for _, b := range binTimeRanges(t, binSize) {
		br := ComputeBinStats(r[b[0]:b[1]], rf, tol)
		agg.Bins = append(agg.Bins, br)
		okRF := rfAcc.add(&agg.RFRMS, br.RFRMS, b[1]-b[0])
		okOne := oneAcc.add(&agg.OneRMS, br.OneRMS, b[1]-b[0])
		if !okRF || !okOne {
			failed++
		}
	}

	rfAcc.finish(&agg.RFRMS)
	oneAcc.finish(&agg.OneRMS)

	if rfAcc.ok == 0 {
		agg.Status = StatsCalcFailed
		return agg
	}
	if failed > 0 {
		agg.Status = SomeBinsCalcFailed
	} else {
		agg.Status = NotError
	}
	return agg
}

type totalsAccum struct {
	ok                                                int
	sumIters, sumMean, sumRMS, sumSkew, sumK, sumPeak float64
}

// add folds one bin's phase statistics into the running totals; n is
// the bin's sample count. A failed bin contributes only rejected
// counts and an all-false mask segment.
func (a *totalsAccum) add(tot *AggregateTotals, bs BinStats, n int) bool {
	if bs.Status != NotError {
		tot.Rejected += n
		tot.AcceptMask = append(tot.AcceptMask, make([]bool, n)...)
		return false
	}
	tot.Accepted += bs.Accepted
	tot.Rejected += bs.Rejected
	tot.AcceptMask = append(tot.AcceptMask, bs.AcceptMask...)
	a.ok++
	a.sumIters += float64(bs.Iterations)
	a.sumMean += bs.Mean
	a.sumRMS += bs.RMS
	a.sumSkew += bs.Skew
	a.sumK += bs.ExcessKurtosis
	a.sumPeak += bs.Peak
	return true
}

func (a *totalsAccum) finish(tot *AggregateTotals) {
	if len(tot.AcceptMask) > 0 {
		tot.AcceptedPct = 100 * float64(tot.Accepted) / float64(len(tot.AcceptMask))
	}
	if a.ok == 0 {
		return
	}
	n := float64(a.ok)
	tot.MeanIters = a.sumIters / n
	tot.Mean = a.sumMean / n
	tot.RMS = a.sumRMS / n
	tot.Skew = a.sumSkew / n
	tot.ExcessKurtosis = a.sumK / n
	tot.Peak = a.sumPeak / n
}

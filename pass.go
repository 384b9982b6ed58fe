package slrcore

// PassCalculator scans a CPF interpolator over a time range and
// accumulates contiguous visibility passes above a minimum elevation.
// It is a small state machine: state B while above the
// elevation floor accumulating PassSteps, state A otherwise; a pass is
// committed to the output list only on the B-to-A transition (or at
// the end of the scan).
type PassCalculator struct {
	interp   *CPFInterpolator
	minElDeg float64
	stepSec  float64
}

// NewPassCalculator builds a calculator bound to interp, scanning in
// stepSec increments and keeping only steps at or above minElDeg.
func NewPassCalculator(interp *CPFInterpolator, minElDeg, stepSec float64) *PassCalculator {
	return &PassCalculator{interp: interp, minElDeg: minElDeg, stepSec: stepSec}
}

// Scan walks [mjdStart,secStart] to [mjdEnd,secEnd] and returns every
// pass found. A hard interpolator failure aborts the scan and
// discards the passes found so far; an advisory NotInTheMiddle on an
// individual step does not.
func (pc *PassCalculator) Scan(mjdStart int, secStart float64, mjdEnd int, secEnd float64) ([]Pass, Status) {
	if pc.interp == nil || len(pc.interp.times) == 0 {
		return nil, CpfNotValid
	}

	t := float64(mjdStart)*SecPerDay + secStart
	tEnd := float64(mjdEnd)*SecPerDay + secEnd
	if t > tEnd {
		return nil, OtherError
	}
	if !pc.interp.Covers(mjdStart, secStart) || !pc.interp.Covers(mjdEnd, secEnd) {
		return nil, IntervalOutsideOfCpf
	}

	var passes []Pass
	var current Pass
	inPass := false
	var prevAz, prevEl float64
	havePrev := false

	for ; t <= tEnd; t += pc.stepSec {
		mjd := int(t / SecPerDay)
		sod := t - float64(mjd)*SecPerDay

		pred := pc.interp.Predict(mjd, sod, InstantVector, Lagrange9)
		if pred.Status.Fatal() {
			return nil, OtherError
		}

		if pred.ElevationDeg < pc.minElDeg {
			if inPass {
				passes = append(passes, current)
				current = Pass{}
				inPass = false
			}
			havePrev = false
			continue
		}

		step := PassStep{
			MJD:          mjd,
			FracDay:      sod / SecPerDay,
			AzimuthDeg:   pred.AzimuthDeg,
			ElevationDeg: pred.ElevationDeg,
			RangeM:       pred.Range1Way,
			TofSec:       pred.TofSec,
		}
		if havePrev {
			step.AzRateDegS = wrapDelta(pred.AzimuthDeg-prevAz) / pc.stepSec
			step.ElRateDegS = (pred.ElevationDeg - prevEl) / pc.stepSec
		}
		// First step of a pass carries zero rates: there is no
		// previous sample in this pass to difference against.
		if !inPass {
			step.AzRateDegS = 0
			step.ElRateDegS = 0
		}

		current.Steps = append(current.Steps, step)
		inPass = true
		prevAz, prevEl = pred.AzimuthDeg, pred.ElevationDeg
		havePrev = true
	}

	if inPass {
		passes = append(passes, current)
	}
	return passes, NotError
}

// wrapDelta returns d adjusted into (-180,180], correcting an azimuth
// difference across the 0/360 discontinuity.
func wrapDelta(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}

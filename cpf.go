package slrcore

import "math"

// PredictMode selects what Predict returns.
type PredictMode int

const (
	InstantVector PredictMode = iota
	AverageDistance
	OutboundVector
)

// InterpOrder selects the Lagrange window width.
type InterpOrder int

const (
	Lagrange9  InterpOrder = 9
	Lagrange15 InterpOrder = 15
)

// Prediction is the result of one CPF interpolation.
type Prediction struct {
	MJD           int
	MJDFrac       float64 // MJD plus fractional day
	SecOfDay      float64
	AzimuthDeg    float64
	ElevationDeg  float64
	AzDiffDeg     float64 // transmit minus bounce, doubled
	ElDiffDeg     float64
	Range1Way     float64 // metres, one-way (CoM corrected)
	TofSec        float64 // two-way time of flight, seconds
	GeocentricPos Vec3
	Status        Status
}

// CPFInterpolator holds one parsed ephemeris table and the fixed
// per-station rotation needed to turn a geocentric difference vector
// into topocentric azimuth/elevation. The whole index is built once
// here and never mutated, so Predict is safe to call from multiple
// goroutines.
type CPFInterpolator struct {
	mjd0    int         // reference day of the table
	times   []float64   // seconds since mjd0 00:00, strictly increasing
	pos     [][]float64 // geocentric x/y/z rows parallel to times
	station StationLocation
	rot     Mat3    // R = Rz(lon)*Ry(pi/2-lat)*Rz(pi); l = t_tx . R (right-multiplied row vector)
	com     float64 // centre-of-mass correction, metres
}

// NewCPFInterpolator builds an interpolator from an ordered, non-empty
// ephemeris table and a fixed station location. comOffset is
// the laser retro-reflector centre-of-mass correction in metres,
// applied as a fixed subtraction from every computed range.
func NewCPFInterpolator(samples []EphemerisSample, station StationLocation, comOffset Optional[float64]) (*CPFInterpolator, Status) {
	if len(samples) == 0 {
		return nil, CpfDataEmpty
	}

	mjd0 := samples[0].MJD
	times := make([]float64, len(samples))
	pos := make([][]float64, len(samples))
	for i, s := range samples {
		times[i] = float64(s.MJD-mjd0)*SecPerDay + s.SecOfDay
		pos[i] = []float64{s.Position[0], s.Position[1], s.Position[2]}
	}

	lat := station.Geodetic.LatRad()
	lon := station.Geodetic.LonRad()
	rot := Rot(AxisZ, lon).Mul(Rot(AxisY, PI/2-lat)).Mul(Rot(AxisZ, PI))

	com := comOffset.OrElse(0)

	return &CPFInterpolator{
		mjd0:    mjd0,
		times:   times,
		pos:     pos,
		station: station,
		rot:     rot,
		com:     com,
	}, NotError
}

// Covers reports whether (mjd, secOfDay) falls within the ephemeris
// table's time span.
func (c *CPFInterpolator) Covers(mjd int, secOfDay float64) bool {
	t := float64(mjd-c.mjd0)*SecPerDay + secOfDay
	return t >= c.times[0] && t <= c.times[len(c.times)-1]
}

func (c *CPFInterpolator) interpPosition(t float64, order InterpOrder) (Vec3, Status) {
	if t < c.times[0] || t > c.times[len(c.times)-1] {
		return Vec3{}, XInterpolatedOutOfBounds
	}
	out, st := LagrangeInterp(c.times, c.pos, t, int(order))
	if st == DataSizeMismatch {
		return Vec3{}, InterpolationDataSizeMismatch
	}
	if st.Fatal() {
		return Vec3{}, st
	}
	return Vec3{out[0], out[1], out[2]}, st
}

// azEl rotates a geocentric difference vector into the local frame
// (l = diff . R) and returns azimuth/elevation in degrees.
// Elevation is clamped at exactly 90 degrees to 90.01, since the
// CPF format reserves 90.00 to flag "no valid elevation".
func (c *CPFInterpolator) azEl(diff Vec3) (azDeg, elDeg float64) {
	l := c.rot.MulVec3T(diff)
	horiz := math.Hypot(l[0], l[1])
	el := math.Atan2(l[2], horiz) * R2D
	if el >= 90.0 {
		el = 90.01
	}
	az := math.Atan2(-l[1], l[0]) * R2D
	if az < 0 {
		az += 360.0
	}
	return az, el
}

// Predict interpolates the satellite position for the given instant
// and, for the two light-time-aware modes, iterates the light-time
// equation twice to convergence. mjd/secOfDay identify the
// instant the signal is transmitted; order selects the Lagrange
// window width per call, so one interpolator can serve callers with
// different accuracy needs.
func (c *CPFInterpolator) Predict(mjd int, secOfDay float64, mode PredictMode, order InterpOrder) Prediction {
	x := float64(mjd-c.mjd0)*SecPerDay + secOfDay
	out := Prediction{MJD: mjd, MJDFrac: float64(mjd) + secOfDay/SecPerDay, SecOfDay: secOfDay}

	if order != Lagrange9 && order != Lagrange15 {
		out.Status = UnknownInterpolator
		return out
	}
	if len(c.times) == 0 {
		out.Status = NoPosRecords
		return out
	}

	pTx, st := c.interpPosition(x, order)
	if st.Fatal() {
		out.Status = st
		return out
	}
	warn := st == NotInTheMiddle

	stationGeo := c.station.Geocentric.XYZ(Metres)
	tTx := pTx.Sub(stationGeo)
	rhoTx := tTx.Norm()
	azTx, elTx := c.azEl(tTx)

	if mode == InstantVector {
		out.AzimuthDeg = azTx
		out.ElevationDeg = elTx
		out.GeocentricPos = pTx
		out.Range1Way = rhoTx - c.com
		out.TofSec = 2 * out.Range1Way / CLIGHT
		out.Status = NotError
		if warn {
			out.Status = InterpolationNotInTheMiddle
		}
		return out
	}

	tOut := rhoTx / CLIGHT
	var pBx, sPrime Vec3
	for i := 0; i < 2; i++ {
		xB := x + tOut
		var st2 Status
		pBx, st2 = c.interpPosition(xB, order)
		if st2.Fatal() {
			out.Status = st2
			return out
		}
		if st2 == NotInTheMiddle {
			warn = true
		}
		theta := OMGE * (tOut / SecPerDay)
		sPrime = Rot(AxisZ, theta).MulVec3(stationGeo)
		diffBounce := pBx.Sub(sPrime)
		tOut = diffBounce.Norm() / CLIGHT
	}

	azOut, elOut := c.azEl(pBx.Sub(sPrime))
	rangeFinal := pBx.Sub(stationGeo).Norm() - c.com

	out.AzimuthDeg = azOut
	out.ElevationDeg = elOut
	out.GeocentricPos = pBx
	out.Range1Way = rangeFinal
	out.TofSec = 2 * rangeFinal / CLIGHT
	out.Status = NotError
	if warn {
		out.Status = InterpolationNotInTheMiddle
	}

	if mode == AverageDistance {
		out.AzDiffDeg = wrapDelta360(2 * (azTx - azOut))
		out.ElDiffDeg = 2 * (elTx - elOut)
	}
	return out
}

// wrapDelta360 folds d into [-360,360], the reporting convention for
// the doubled azimuth difference.
func wrapDelta360(d float64) float64 {
	for d > 360 {
		d -= 360
	}
	for d < -360 {
		d += 360
	}
	return d
}

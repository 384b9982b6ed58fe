package slrcore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

// arcStation builds an equatorial station and the fixed topocentric
// rotation matrix the interpolator computes internally
// (R = Rz(lon)*Ry(pi/2-lat)*Rz(pi)),
// so the test can place ephemeris samples at a chosen az/el directly.
func arcStation() (slrcore.StationLocation, slrcore.Mat3) {
	station := slrcore.StationLocation{
		Geodetic:   slrcore.NewGeodeticPoint(0, 0, 0, slrcore.Degrees, slrcore.Metres),
		Geocentric: slrcore.NewGeocentricPoint(6378137, 0, 0, slrcore.Metres),
	}
	rot := slrcore.Rot(slrcore.AxisZ, 0).Mul(slrcore.Rot(slrcore.AxisY, math.Pi/2)).Mul(slrcore.Rot(slrcore.AxisZ, math.Pi))
	return station, rot
}

func azElToGeocentric(rot slrcore.Mat3, stationXYZ slrcore.Vec3, azRad, elRad, rho float64) slrcore.Vec3 {
	horiz := rho * math.Cos(elRad)
	l := slrcore.Vec3{horiz * math.Cos(azRad), -horiz * math.Sin(azRad), rho * math.Sin(elRad)}
	diff := rot.MulVec3(l)
	return stationXYZ.Add(diff)
}

// A single rise-and-set arc over two hours yields exactly one pass.
func Test_PassCalculatorSingleArc(t *testing.T) {
	assert := assert.New(t)

	station, rot := arcStation()
	stationXYZ := station.Geocentric.XYZ(slrcore.Metres)

	const duration = 7200.0
	const cpfStep = 5.0
	nSamples := int(duration/cpfStep) + 1
	samples := make([]slrcore.EphemerisSample, nSamples)
	for i := 0; i < nSamples; i++ {
		tt := float64(i) * cpfStep
		el := 60.0 * math.Sin(math.Pi*tt/duration) * slrcore.D2R
		samples[i] = slrcore.EphemerisSample{
			MJD:      59000,
			SecOfDay: tt,
			Position: azElToGeocentric(rot, stationXYZ, 90.0*slrcore.D2R, el, 2.0e7),
		}
	}

	interp, st := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())
	assert.Equal(slrcore.NotError, st)

	pc := slrcore.NewPassCalculator(interp, 9.0, 0.5)
	passes, st := pc.Scan(59000, 0, 59000, duration)
	assert.Equal(slrcore.NotError, st)
	assert.Len(passes, 1)

	pass := passes[0]
	// el(t) = 60*sin(pi*t/duration) crosses the 9 deg floor at
	// t1 = duration/pi * asin(9/60) and its mirror t2 = duration - t1.
	t1 := duration / math.Pi * math.Asin(9.0/60.0)
	wantDuration := duration - 2*t1
	wantSteps := wantDuration/0.5 + 1
	assert.InDelta(wantSteps, float64(len(pass.Steps)), 50)

	assert.Equal(0.0, pass.Steps[0].AzRateDegS)
	assert.Equal(0.0, pass.Steps[0].ElRateDegS)

	var maxEl float64
	for _, s := range pass.Steps {
		assert.GreaterOrEqual(s.ElevationDeg, 9.0)
		if s.ElevationDeg > maxEl {
			maxEl = s.ElevationDeg
		}
	}
	assert.InDelta(60.0, maxEl, 0.5)
}

func Test_PassCalculatorEmptyInterpolator(t *testing.T) {
	assert := assert.New(t)
	pc := slrcore.NewPassCalculator(nil, 9.0, 1.0)
	_, st := pc.Scan(59000, 0, 59000, 100)
	assert.Equal(slrcore.CpfNotValid, st)
}

func Test_PassCalculatorIntervalOutsideCpf(t *testing.T) {
	assert := assert.New(t)
	station, rot := arcStation()
	stationXYZ := station.Geocentric.XYZ(slrcore.Metres)

	samples := make([]slrcore.EphemerisSample, 11)
	for i := range samples {
		tt := float64(i) * 60.0
		samples[i] = slrcore.EphemerisSample{MJD: 59000, SecOfDay: tt, Position: azElToGeocentric(rot, stationXYZ, 0, 30*slrcore.D2R, 2e7)}
	}
	interp, _ := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())

	pc := slrcore.NewPassCalculator(interp, 9.0, 1.0)
	_, st := pc.Scan(59000, 0, 59000, 10000)
	assert.Equal(slrcore.IntervalOutsideOfCpf, st)
}

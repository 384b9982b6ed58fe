package slrcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

func flatEphemerisResidStation() (slrcore.StationLocation, []slrcore.EphemerisSample) {
	station := slrcore.StationLocation{
		Geodetic:   slrcore.NewGeodeticPoint(0, 0, 0, slrcore.Degrees, slrcore.Metres),
		Geocentric: slrcore.NewGeocentricPoint(6378137, 0, 0, slrcore.Metres),
	}
	stationXYZ := station.Geocentric.XYZ(slrcore.Metres)
	samples := make([]slrcore.EphemerisSample, 1441)
	for i := range samples {
		tt := float64(i) * 60.0
		samples[i] = slrcore.EphemerisSample{
			MJD:      59000,
			SecOfDay: tt,
			Position: stationXYZ.Add(slrcore.Vec3{1.0e7, 1.0e7, 1.0e7}),
		}
	}
	return station, samples
}

// Day-rollover handling: a time tag smaller than the previous one
// increments the working MJD by exactly one.
func Test_ComputeResidualsDayRollover(t *testing.T) {
	assert := assert.New(t)
	station, samples := flatEphemerisResidStation()
	interp, st := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())
	assert.Equal(slrcore.NotError, st)

	tof := 2 * (1.0e7 * 1.7320508) / slrcore.CLIGHT // 2*norm({1e7,1e7,1e7})/c
	obs := []slrcore.Observation{
		{SecOfDay: 86300, TwoWaySec: tof},
		{SecOfDay: 100, TwoWaySec: tof}, // rollover: next day
	}
	meteo := []slrcore.MeteoSample{{SecOfDay: 0, PressureMb: 1013.25, TempK: 288.15, HumidityPct: 50}}

	cfg := slrcore.ResidualConfig{Interp: interp, Station: station, WavelengthUm: slrcore.Some(0.532), WaterVapour: slrcore.GiacomoDavis}

	// Ephemeris only covers day 59000; after rollover the second
	// observation lands on day 59001, outside the table, so the
	// pipeline must fail rather than silently reuse the wrong day.
	_, st = slrcore.ComputeResiduals(59000, obs, meteo, cfg)
	assert.Equal(slrcore.ResidsCalcFailed, st)
}

func Test_ComputeResidualsEmptyEphemeris(t *testing.T) {
	assert := assert.New(t)
	cfg := slrcore.ResidualConfig{Interp: nil, WavelengthUm: slrcore.Some(0.532)}
	_, st := slrcore.ComputeResiduals(59000, []slrcore.Observation{{SecOfDay: 0, TwoWaySec: 1}}, nil, cfg)
	assert.Equal(slrcore.CpfDataEmpty, st)
}

func Test_ComputeResidualsEmptyObservations(t *testing.T) {
	assert := assert.New(t)
	station, samples := flatEphemerisResidStation()
	interp, _ := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())
	cfg := slrcore.ResidualConfig{Interp: interp, WavelengthUm: slrcore.Some(0.532)}
	_, st := slrcore.ComputeResiduals(59000, nil, nil, cfg)
	assert.Equal(slrcore.CrdDataEmpty, st)
}

func Test_ComputeResidualsMissingWavelength(t *testing.T) {
	assert := assert.New(t)
	station, samples := flatEphemerisResidStation()
	interp, _ := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())
	cfg := slrcore.ResidualConfig{Interp: interp}
	_, st := slrcore.ComputeResiduals(59000, []slrcore.Observation{{SecOfDay: 0, TwoWaySec: 1}}, nil, cfg)
	assert.Equal(slrcore.CrdCfgNotValid, st)
}

func Test_ComputeResidualsMissingMeteo(t *testing.T) {
	assert := assert.New(t)
	station, samples := flatEphemerisResidStation()
	interp, _ := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())
	cfg := slrcore.ResidualConfig{Interp: interp, Station: station, WavelengthUm: slrcore.Some(0.532)}
	_, st := slrcore.ComputeResiduals(59000, []slrcore.Observation{{SecOfDay: 0, TwoWaySec: 1}}, nil, cfg)
	assert.Equal(slrcore.CrdCfgNotValid, st)
}

func Test_ComputeResidualsHappyPath(t *testing.T) {
	assert := assert.New(t)
	station, samples := flatEphemerisResidStation()
	interp, _ := slrcore.NewCPFInterpolator(samples, station, slrcore.None[float64]())

	tof := 2 * (1.0e7 * 1.7320508) / slrcore.CLIGHT
	obs := []slrcore.Observation{{SecOfDay: 3600, TwoWaySec: tof}}
	meteo := []slrcore.MeteoSample{{SecOfDay: 0, PressureMb: 1013.25, TempK: 288.15, HumidityPct: 50}}
	cfg := slrcore.ResidualConfig{Interp: interp, Station: station, WavelengthUm: slrcore.Some(0.532), WaterVapour: slrcore.GiacomoDavis}

	out, st := slrcore.ComputeResiduals(59000, obs, meteo, cfg)
	assert.Equal(slrcore.NotError, st)
	assert.Len(out, 1)
	assert.Greater(out[0].TropoPs, 0.0)
}

package slrcore

// ResidualSample is one (time, residual) pair produced by the residual
// computation, alongside the predicted distance and
// tropospheric correction that produced it.
type ResidualSample struct {
	SecOfDay float64
	ResidPs  float64 // residual, picoseconds
	RangePs  float64 // predicted two-way range, picoseconds
	TropoPs  float64 // two-way tropospheric correction, picoseconds
}

// ResidualConfig bundles the fixed inputs the residual computation
// needs beyond the observation/meteo sequences themselves.
type ResidualConfig struct {
	Interp       *CPFInterpolator
	Station      StationLocation
	WavelengthUm Optional[float64]
	WaterVapour  WaterVapourModel
}

// ComputeResiduals walks observations against cfg.Interp, producing
// one residual sample per observation. obs must be ordered by
// seconds-of-day within each day; a time tag smaller than the previous
// one is taken as a day rollover and increments the working MJD.
// meteo must be ordered by SecOfDay; the cursor advances to the
// latest sample not exceeding the observation's time tag.
func ComputeResiduals(startMJD int, obs []Observation, meteo []MeteoSample, cfg ResidualConfig) ([]ResidualSample, Status) {
	if cfg.Interp == nil {
		return nil, CpfDataEmpty
	}
	if len(obs) == 0 {
		return nil, CrdDataEmpty
	}
	lambda, haveLambda := cfg.WavelengthUm.Get()
	if !haveLambda {
		return nil, CrdCfgNotValid
	}
	// The Marini-Murray correction needs surface weather; without it
	// the closed form divides by T=0.
	if len(meteo) == 0 {
		return nil, CrdCfgNotValid
	}

	out := make([]ResidualSample, 0, len(obs))
	mjd := startMJD
	meteoIdx := 0
	var prevT float64
	havePrevT := false

	for _, o := range obs {
		if havePrevT && o.SecOfDay < prevT {
			mjd++
		}
		prevT = o.SecOfDay
		havePrevT = true

		for meteoIdx+1 < len(meteo) && meteo[meteoIdx+1].SecOfDay <= o.SecOfDay {
			meteoIdx++
		}
		m := meteo[meteoIdx]

		pred := cfg.Interp.Predict(mjd, o.SecOfDay, InstantVector, Lagrange9)
		if pred.Status.Fatal() {
			return nil, ResidsCalcFailed
		}

		tropoOneWay := MariniMurrayDelay(m.PressureMb, m.TempK, m.HumidityPct,
			pred.ElevationDeg*D2R, lambda, cfg.Station.Geodetic.LatRad(), cfg.Station.Geodetic.AltMetres(), cfg.WaterVapour)
		tropoPs := 2 * MetresToPicoseconds(tropoOneWay)
		rangePs := pred.TofSec * Sec2Picosec

		r := o.TwoWaySec*Sec2Picosec - rangePs - tropoPs

		out = append(out, ResidualSample{
			SecOfDay: o.SecOfDay,
			ResidPs:  r,
			RangePs:  rangePs,
			TropoPs:  tropoPs,
		})
	}
	return out, NotError
}

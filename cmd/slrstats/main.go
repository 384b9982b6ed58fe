// slrstats runs the full-rate residual pipeline (Marini-Murray
// correction, bin detrend, robust bin statistics) over one ranging
// session and persists the per-bin Normal-Point records to ClickHouse.
// With -live it reads full-rate observations off a serial event timer
// instead of the session file.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"slrcore"
)

var help = []string{
	"",
	" usage: slrstats -k session.yaml [-live port[:baud]]",
	"",
	" -k file        session configuration file [required]",
	" -live port     read full-rate observations from a serial event timer instead of the session file",
	" -x level       debug trace level (0:off) [0]",
}

func searchHelp(key string) string {
	for _, h := range help {
		if strings.Contains(h, key) {
			return h
		}
	}
	return "no supported argument"
}

func buildInterpolator(cfg *SessionConfig) (*slrcore.CPFInterpolator, slrcore.StationLocation, slrcore.Status) {
	samples := make([]slrcore.EphemerisSample, len(cfg.Ephemeris))
	for i, e := range cfg.Ephemeris {
		samples[i] = slrcore.EphemerisSample{MJD: e.MJD, SecOfDay: e.Sec, Position: slrcore.Vec3{e.X, e.Y, e.Z}}
	}
	station := slrcore.StationLocation{
		Geodetic:   slrcore.NewGeodeticPoint(cfg.Station.LatDeg, cfg.Station.LonDeg, cfg.Station.AltM, slrcore.Degrees, slrcore.Metres),
		Geocentric: slrcore.NewGeocentricPoint(cfg.Station.X, cfg.Station.Y, cfg.Station.Z, slrcore.Metres),
	}
	com := slrcore.None[float64]()
	if cfg.ComOffsetM != nil {
		com = slrcore.Some(*cfg.ComOffsetM)
	}
	interp, st := slrcore.NewCPFInterpolator(samples, station, com)
	return interp, station, st
}

// binStatsFanOut runs ComputeBinStats over every bin concurrently on a
// worker pool sized to runtime.NumCPU(), each goroutine owning its own
// output slot, joined with a WaitGroup.
// slrcore.AggregateResidualStats runs bins sequentially; the bins are
// independent, so a pool is safe.
func binStatsFanOut(t, r []float64, binSize, rf, tol float64) []slrcore.BinResult {
	ranges := slrcore.BinRanges(t, binSize)
	results := make([]slrcore.BinResult, len(ranges))

	workers := runtime.NumCPU()
	if workers > len(ranges) {
		workers = len(ranges)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				b := ranges[idx]
				results[idx] = slrcore.ComputeBinStats(r[b[0]:b[1]], rf, tol)
			}
		}()
	}
	for idx := range ranges {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

func main() {
	var (
		sessionFile string
		live        string
		liveCount   int
		traceLevel  int
	)
	flag.StringVar(&sessionFile, "k", "", searchHelp("-k"))
	flag.StringVar(&live, "live", "", searchHelp("-live"))
	flag.IntVar(&liveCount, "n", 1000, "number of live observations to collect before running the pipeline")
	flag.IntVar(&traceLevel, "x", 0, searchHelp("-x"))
	flag.Parse()

	if sessionFile == "" {
		for _, h := range help {
			fmt.Println(h)
		}
		os.Exit(1)
	}

	slrcore.TraceLevel(traceLevel)
	if traceLevel > 0 {
		slrcore.TraceOpen("slrstats.trace")
		defer slrcore.TraceClose()
	}

	cfg, err := loadSessionConfig(sessionFile)
	if err != nil {
		slrcore.Trace(1, "slrstats: %v\n", err)
		os.Exit(1)
	}

	interp, station, st := buildInterpolator(cfg)
	if st.Fatal() {
		slrcore.Trace(1, "slrstats: build interpolator: %v\n", st)
		os.Exit(1)
	}

	obs := make([]slrcore.Observation, len(cfg.Observations))
	for i, o := range cfg.Observations {
		obs[i] = slrcore.Observation{SecOfDay: o.Sec, TwoWaySec: o.Tof}
	}
	if live != "" {
		port, baud := live, 9600
		if idx := strings.IndexByte(live, ':'); idx >= 0 {
			port = live[:idx]
			fmt.Sscanf(live[idx+1:], "%d", &baud)
		}
		liveObs, err := readLiveObservations(port, baud, liveCount)
		if err != nil {
			slrcore.Trace(1, "slrstats: live ingestion: %v\n", err)
			os.Exit(1)
		}
		obs = liveObs
	}

	meteo := make([]slrcore.MeteoSample, len(cfg.Meteo))
	for i, m := range cfg.Meteo {
		meteo[i] = slrcore.MeteoSample{SecOfDay: m.Sec, PressureMb: m.Pressure, TempK: m.TempK, HumidityPct: m.Humidity}
	}

	rcfg := slrcore.ResidualConfig{
		Interp:       interp,
		Station:      station,
		WavelengthUm: slrcore.Some(cfg.WavelengthUm),
		WaterVapour:  cfg.waterVapourModel(),
	}
	residuals, st := slrcore.ComputeResiduals(cfg.StartMJD, obs, meteo, rcfg)
	if st.Fatal() {
		slrcore.Trace(1, "slrstats: residual computation: %v\n", st)
		os.Exit(1)
	}

	t := make([]float64, len(residuals))
	r := make([]float64, len(residuals))
	for i, rs := range residuals {
		t[i] = rs.SecOfDay
		r[i] = rs.ResidPs
	}

	detrended, st := slrcore.DetrendBins(t, r, cfg.BinSizeSec, cfg.DetrendDegree)
	if st.Fatal() {
		slrcore.Trace(1, "slrstats: detrend: %v\n", st)
		os.Exit(1)
	}

	results := binStatsFanOut(t, detrended, cfg.BinSizeSec, cfg.RejectFactor, cfg.Tolerance)
	slrcore.Trace(3, "slrstats: %d bins computed\n", len(results))

	db, err := openClickHouse(cfg)
	if err != nil {
		slrcore.Trace(1, "slrstats: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := writeBinResults(db, cfg.SessionID, results); err != nil {
		slrcore.Trace(1, "slrstats: write clickhouse: %v\n", err)
		os.Exit(1)
	}
}

// slrpredict computes visibility passes over a station/ephemeris
// session and exports the pointing time series to Prometheus and
// InfluxDB.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	influxdb "github.com/influxdata/influxdb-client-go/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"slrcore"
)

var help = []string{
	"",
	" usage: slrpredict -k session.yaml",
	"",
	" -k file   session configuration file (station, ephemeris, window) [required]",
	" -x level  debug trace level (0:off) [0]",
}

func searchHelp(key string) string {
	for _, h := range help {
		if strings.Contains(h, key) {
			return h
		}
	}
	return "no supported argument"
}

func buildInterpolator(cfg *SessionConfig) (*slrcore.CPFInterpolator, slrcore.Status) {
	samples := make([]slrcore.EphemerisSample, len(cfg.Ephemeris))
	for i, e := range cfg.Ephemeris {
		samples[i] = slrcore.EphemerisSample{
			MJD:      e.MJD,
			SecOfDay: e.Sec,
			Position: slrcore.Vec3{e.X, e.Y, e.Z},
		}
	}
	station := slrcore.StationLocation{
		Geodetic:   slrcore.NewGeodeticPoint(cfg.Station.LatDeg, cfg.Station.LonDeg, cfg.Station.AltM, slrcore.Degrees, slrcore.Metres),
		Geocentric: slrcore.NewGeocentricPoint(cfg.Station.X, cfg.Station.Y, cfg.Station.Z, slrcore.Metres),
	}
	com := slrcore.None[float64]()
	if cfg.ComOffsetM != nil {
		com = slrcore.Some(*cfg.ComOffsetM)
	}
	return slrcore.NewCPFInterpolator(samples, station, com)
}

// pushPassMetrics pushes one gauge pair per pass (max elevation, step
// count) to the configured Pushgateway.
func pushPassMetrics(url string, passes []slrcore.Pass) error {
	if url == "" || len(passes) == 0 {
		return nil
	}
	maxEl := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "slrcore_pass_max_elevation_deg",
		Help: "maximum elevation reached during a visibility pass",
	}, []string{"pass_index"})
	steps := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "slrcore_pass_step_count",
		Help: "number of steps recorded for a visibility pass",
	}, []string{"pass_index"})

	for i, p := range passes {
		var best float64
		for _, s := range p.Steps {
			if s.ElevationDeg > best {
				best = s.ElevationDeg
			}
		}
		idx := fmt.Sprintf("%d", i)
		maxEl.WithLabelValues(idx).Set(best)
		steps.WithLabelValues(idx).Set(float64(len(p.Steps)))
	}

	return push.New(url, "slrpredict").Collector(maxEl).Collector(steps).Push()
}

// writePointingSeries writes one InfluxDB point per pass step in the
// "pointing" measurement.
func writePointingSeries(cfg *SessionConfig, passes []slrcore.Pass) {
	if cfg.InfluxURL == "" {
		return
	}
	client := influxdb.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer client.Close()
	writeAPI := client.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket)
	defer writeAPI.Flush()

	for pi, p := range passes {
		for si, s := range p.Steps {
			pt := influxdb.NewPointWithMeasurement("pointing").
				AddTag("pass", fmt.Sprintf("%d", pi)).
				AddTag("step", fmt.Sprintf("%d", si)).
				AddField("azimuth_deg", s.AzimuthDeg).
				AddField("elevation_deg", s.ElevationDeg).
				AddField("az_rate_deg_s", s.AzRateDegS).
				AddField("el_rate_deg_s", s.ElRateDegS).
				AddField("range_m", s.RangeM).
				AddField("flight_time_s", s.TofSec)
			writeAPI.WritePoint(pt)
		}
	}
}

func main() {
	var (
		sessionFile string
		traceLevel  int
	)
	flag.StringVar(&sessionFile, "k", "", searchHelp("-k"))
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
		slrcore.TraceOpen("slrpredict.trace")
		defer slrcore.TraceClose()
	}

	cfg, err := loadSessionConfig(sessionFile)
	if err != nil {
		slrcore.Trace(1, "slrpredict: %v\n", err)
		os.Exit(1)
	}

	interp, st := buildInterpolator(cfg)
	if st.Fatal() {
		slrcore.Trace(1, "slrpredict: build interpolator: %v\n", st)
		os.Exit(1)
	}

	pc := slrcore.NewPassCalculator(interp, cfg.MinElevationDeg, cfg.StepSec)
	passes, st := pc.Scan(cfg.Window.StartMJD, cfg.Window.StartSec, cfg.Window.EndMJD, cfg.Window.EndSec)
	if st.Fatal() {
		slrcore.Trace(1, "slrpredict: pass scan: %v\n", st)
		os.Exit(1)
	}
	slrcore.Trace(3, "slrpredict: %d passes found\n", len(passes))

	if err := pushPassMetrics(cfg.PushgatewayURL, passes); err != nil {
		slrcore.Trace(2, "slrpredict: push metrics: %v\n", err)
	}
	writePointingSeries(cfg, passes)
}

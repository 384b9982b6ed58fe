package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SessionConfig is the YAML session file slrpredict loads: station
// coordinates, the ephemeris table and the pass-window parameters. The
// core package never touches YAML itself - this is cmd/ plumbing only.
type SessionConfig struct {
	Station struct {
		LatDeg float64 `yaml:"lat_deg"`
		LonDeg float64 `yaml:"lon_deg"`
		AltM   float64 `yaml:"alt_m"`
		X      float64 `yaml:"x"`
		Y      float64 `yaml:"y"`
		Z      float64 `yaml:"z"`
	} `yaml:"station"`

	ComOffsetM *float64 `yaml:"com_offset_m"`

	Ephemeris []struct {
		MJD int     `yaml:"mjd"`
		Sec float64 `yaml:"sec"`
		X   float64 `yaml:"x"`
		Y   float64 `yaml:"y"`
		Z   float64 `yaml:"z"`
	} `yaml:"ephemeris"`

	MinElevationDeg float64 `yaml:"min_elevation_deg"`
	StepSec         float64 `yaml:"step_sec"`

	Window struct {
		StartMJD int     `yaml:"start_mjd"`
		StartSec float64 `yaml:"start_sec"`
		EndMJD   int     `yaml:"end_mjd"`
		EndSec   float64 `yaml:"end_sec"`
	} `yaml:"window"`

	PushgatewayURL string `yaml:"pushgateway_url"`
	InfluxURL      string `yaml:"influx_url"`
	InfluxToken    string `yaml:"influx_token"`
	InfluxOrg      string `yaml:"influx_org"`
	InfluxBucket   string `yaml:"influx_bucket"`
}

func loadSessionConfig(path string) (*SessionConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg SessionConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

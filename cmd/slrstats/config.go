package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slrcore"
)

// SessionConfig is the YAML session file slrstats loads. The core
// package accepts plain Go structs only; YAML stays in cmd/ glue.
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

	StartMJD int `yaml:"start_mjd"`

	Observations []struct {
		Sec float64 `yaml:"sec"`
		Tof float64 `yaml:"tof"`
	} `yaml:"observations"`

	Meteo []struct {
		Sec      float64 `yaml:"sec"`
		Pressure float64 `yaml:"pressure_mbar"`
		TempK    float64 `yaml:"temp_k"`
		Humidity float64 `yaml:"humidity_pct"`
	} `yaml:"meteo"`

	WavelengthUm  float64 `yaml:"wavelength_um"`
	WaterVapour   string  `yaml:"water_vapour_model"` // "original_mm" | "giacomo_davis"
	BinSizeSec    float64 `yaml:"bin_size_sec"`
	DetrendDegree int     `yaml:"detrend_degree"`
	RejectFactor  float64 `yaml:"rejection_factor"`
	Tolerance     float64 `yaml:"tolerance_ps"`

	SessionID string `yaml:"session_id"`

	ClickHouse struct {
		Host     string `yaml:"host"`
		AltHost  string `yaml:"alt_host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"clickhouse"`

	LiveSerialPort string `yaml:"live_serial_port"`
	LiveSerialBaud int    `yaml:"live_serial_baud"`
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
	if cfg.DetrendDegree == 0 {
		cfg.DetrendDegree = 9
	}
	return &cfg, nil
}

func (c *SessionConfig) waterVapourModel() slrcore.WaterVapourModel {
	if c.WaterVapour == "giacomo_davis" {
		return slrcore.GiacomoDavis
	}
	return slrcore.OriginalMM
}

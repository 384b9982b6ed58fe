package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	serial "github.com/tarm/goserial"

	"slrcore"
)

// readLiveObservations opens a serial-attached event timer and decodes
// one observation per line of "<sod>,<tof>\n" text. It is a minimal
// text protocol, not a real device decoder: framing, checksums and
// reconnect logic belong to a real driver and are out of scope.
func readLiveObservations(port string, baud int, count int) ([]slrcore.Observation, error) {
	c := &serial.Config{Name: port, Baud: baud}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", port, err)
	}
	defer s.Close()

	scanner := bufio.NewScanner(s)
	var out []slrcore.Observation
	for len(out) < count && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ",", 2)
		if len(fields) != 2 {
			continue
		}
		sod, err1 := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		tof, err2 := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, slrcore.Observation{SecOfDay: sod, TwoWaySec: tof})
	}
	return out, scanner.Err()
}

package slrcore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

// Spot check against the expected sea-level magnitude at 20 degrees.
func Test_MariniMurrayGiacomoDavisSpotCheck(t *testing.T) {
	assert := assert.New(t)

	delta := slrcore.MariniMurrayDelay(
		1013.25, 288.15, 50.0,
		20.0*math.Pi/180.0, 0.532,
		36.465*math.Pi/180.0, 98.177,
		slrcore.GiacomoDavis,
	)

	assert.GreaterOrEqual(delta, 6.5)
	assert.LessOrEqual(delta, 7.5)
}

func Test_MariniMurrayPositivity(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		model slrcore.WaterVapourModel
		elDeg float64
	}{
		{slrcore.OriginalMM, 5},
		{slrcore.OriginalMM, 45},
		{slrcore.OriginalMM, 89},
		{slrcore.GiacomoDavis, 5},
		{slrcore.GiacomoDavis, 45},
		{slrcore.GiacomoDavis, 89},
	}
	for _, c := range cases {
		delta := slrcore.MariniMurrayDelay(1013.25, 288.15, 80.0, c.elDeg*math.Pi/180.0, 0.532, 0.3, 100, c.model)
		assert.Greater(delta, 0.0)
	}
}

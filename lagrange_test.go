package slrcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

func Test_LagrangeInterpLinear(t *testing.T) {
	assert := assert.New(t)

	xs := make([]float64, 11)
	ys := make([][]float64, 11)
	for i := range xs {
		xs[i] = float64(i) * 60.0
		ys[i] = []float64{2*xs[i] + 1, -xs[i] + 5}
	}

	out, st := slrcore.LagrangeInterp(xs, ys, 275.0, 9)
	assert.Equal(slrcore.NotError, st)
	assert.InDelta(2*275.0+1, out[0], 1e-6)
	assert.InDelta(-275.0+5, out[1], 1e-6)
}

func Test_LagrangeInterpOutOfBounds(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{0, 60, 120, 180}
	ys := [][]float64{{0}, {1}, {2}, {3}}

	_, st := slrcore.LagrangeInterp(xs, ys, -5, 3)
	assert.Equal(slrcore.XOutOfBounds, st)

	_, st = slrcore.LagrangeInterp(xs, ys, 250, 3)
	assert.Equal(slrcore.XOutOfBounds, st)
}

func Test_LagrangeInterpDataSizeMismatch(t *testing.T) {
	assert := assert.New(t)
	xs := []float64{0, 1, 2}
	ys := [][]float64{{0}, {1}}

	_, st := slrcore.LagrangeInterp(xs, ys, 1, 1)
	assert.Equal(slrcore.DataSizeMismatch, st)
}

func Test_LagrangeInterpNotInTheMiddle(t *testing.T) {
	assert := assert.New(t)
	xs := make([]float64, 11)
	ys := make([][]float64, 11)
	for i := range xs {
		xs[i] = float64(i) * 60.0
		ys[i] = []float64{float64(i)}
	}

	// Near the left edge: the centred degree-9 window can't straddle x.
	_, st := slrcore.LagrangeInterp(xs, ys, 30.0, 9)
	assert.Equal(slrcore.NotInTheMiddle, st)
}

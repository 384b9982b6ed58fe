package slrcore_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

// The Gaussian-peak routine picks the central mode despite a
// secondary outlier cluster.
func Test_GaussianPeakPicksCentralMode(t *testing.T) {
	assert := assert.New(t)

	r := rand.New(rand.NewSource(5))
	residuals := make([]float64, 0, 1030)
	for i := 0; i < 1000; i++ {
		residuals = append(residuals, r.NormFloat64()*25.0)
	}
	for i := 0; i < 30; i++ {
		residuals = append(residuals, 120.0+r.NormFloat64()*2)
	}

	peak, ok := slrcore.GaussianPeak(residuals, 0, 25.0, 200.0, 8.0)
	assert.True(ok)
	assert.InDelta(0.0, peak, 2.0)
}

func Test_GaussianPeakDegenerateInput(t *testing.T) {
	assert := assert.New(t)

	_, ok := slrcore.GaussianPeak(nil, 0, 25, 200, 8)
	assert.False(ok)

	_, ok = slrcore.GaussianPeak([]float64{1, 2, 3}, 0, 25, 200, 0)
	assert.False(ok)

	_, ok = slrcore.GaussianPeak([]float64{1, 2, 3}, 0, 25, 0, 8)
	assert.False(ok)
}

package slrcore_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"slrcore"
)

// Window-prefilter completeness: the returned index set is exactly
// {i : lo <= r_i <= hi}.
func Test_WindowPrefilterCompleteness(t *testing.T) {
	assert := assert.New(t)

	r := rand.New(rand.NewSource(3))
	residuals := make([]float64, 500)
	for i := range residuals {
		residuals[i] = r.Float64()*200 - 100
	}

	lo, hi := -25.0, 40.0
	got := slrcore.WindowPrefilter(residuals, hi, lo)

	var want []int
	for i, v := range residuals {
		if v >= lo && v <= hi {
			want = append(want, i)
		}
	}
	assert.Equal(want, got)
}

func Test_WindowPrefilterInvalidBand(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(slrcore.WindowPrefilter([]float64{1, 2, 3}, 5, 10))
	assert.Nil(slrcore.WindowPrefilter(nil, 10, 5))
}

// Histogram bin partition: accepted indices are a subset of the input
// indices, and the tallest-column expansion stays contiguous.
func Test_HistogramPrefilterBinPartition(t *testing.T) {
	assert := assert.New(t)

	r := rand.New(rand.NewSource(9))
	n := 2000
	tt := make([]float64, n)
	rr := make([]float64, n)
	for i := range tt {
		tt[i] = float64(i) * 0.05
		rr[i] = r.NormFloat64() * 30
	}

	params := slrcore.HistogramPrefilterParams{BinSize: 20, Depth: 8, MinPhotons: 3}
	accepted := slrcore.HistogramPrefilter(tt, rr, params)

	seen := make(map[int]bool, len(accepted))
	for _, idx := range accepted {
		assert.GreaterOrEqual(idx, 0)
		assert.Less(idx, n)
		assert.False(seen[idx], "duplicate index %d", idx)
		seen[idx] = true
	}
}

func Test_HistogramPostfilterAcceptsNearFit(t *testing.T) {
	assert := assert.New(t)

	n := 60
	tt := make([]float64, n)
	rr := make([]float64, n)
	for i := range tt {
		tt[i] = float64(i)
		rr[i] = 1 + 0.01*tt[i]
	}
	rr[30] = 500 // one gross outlier

	accepted, st := slrcore.HistogramPostfilter(tt, rr, 10.0)
	assert.Equal(slrcore.NotError, st)
	assert.NotContains(accepted, 30)
	assert.Greater(len(accepted), n/2)
}

package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples() ([][]float64, [][]float64) {
	inputs := [][]float64{
		{0, 0}, {1, 10}, {2, 20}, {3, 30},
	}
	targets := [][]float64{
		{0}, {1}, {2}, {3},
	}
	return inputs, targets
}

func TestNewDataset_Validation(t *testing.T) {
	inputs, targets := samples()

	_, err := NewDataset(nil, nil)
	assert.ErrorContains(t, err, "empty")

	_, err = NewDataset(inputs, targets[:2])
	assert.ErrorContains(t, err, "mismatch")

	bad := [][]float64{{0, 0}, {1}}
	_, err = NewDataset(bad, targets[:2])
	assert.ErrorContains(t, err, "input width")

	ds, err := NewDataset(inputs, targets)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.InputWidth())
	assert.Equal(t, 1, ds.TargetWidth())
}

func TestSupplier_SequentialCycling(t *testing.T) {
	inputs, targets := samples()
	ds, err := NewDataset(inputs, targets)
	require.NoError(t, err)

	sup := NewSupplier(ds, nil)

	in, tg, err := sup.NextN(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 10, 2, 20}, in)
	assert.Equal(t, []float64{0, 1, 2}, tg)

	// Wraps past the epoch boundary back to the start.
	in, tg, err = sup.NextN(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 30, 0, 0, 1, 10}, in)
	assert.Equal(t, []float64{3, 0, 1}, tg)

	assert.Equal(t, uint64(6), sup.SamplesTaken())
}

func TestSupplier_RejectsNonPositiveBatch(t *testing.T) {
	inputs, targets := samples()
	ds, err := NewDataset(inputs, targets)
	require.NoError(t, err)

	sup := NewSupplier(ds, nil)
	_, _, err = sup.NextN(0)
	assert.Error(t, err)
}

func TestSupplier_SeededShuffleIsReproducible(t *testing.T) {
	inputs, targets := samples()

	draw := func(seed int64) []float64 {
		ds, err := NewDataset(inputs, targets)
		require.NoError(t, err)
		sup := NewSupplier(ds, rand.New(rand.NewSource(seed)))

		// Two epochs' worth, crossing a reshuffle.
		var all []float64
		for i := 0; i < 2; i++ {
			_, tg, err := sup.NextN(4)
			require.NoError(t, err)
			all = append(all, tg...)
		}
		return all
	}

	assert.Equal(t, draw(42), draw(42))

	// Each epoch is still a permutation of the full target set.
	got := draw(7)
	for _, epoch := range [][]float64{got[:4], got[4:]} {
		assert.ElementsMatch(t, []float64{0, 1, 2, 3}, epoch)
	}
}

package ordering

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForIndex_EmptyList(t *testing.T) {
	assert.Equal(t, 1.0, ForIndex(nil, 0))
	assert.Equal(t, 1.0, ForIndex([]float64{}, 0))
}

func TestForIndex_Head(t *testing.T) {
	assert.Equal(t, 0.0, ForIndex([]float64{1, 2, 3}, 0))
	assert.Equal(t, -1.5, ForIndex([]float64{-0.5}, 0))
}

func TestForIndex_Tail(t *testing.T) {
	assert.Equal(t, 4.0, ForIndex([]float64{1, 2, 3}, 3))
	assert.Equal(t, 3.0, ForIndex([]float64{2}, 1))
}

func TestForIndex_Midpoint(t *testing.T) {
	assert.Equal(t, 1.5, ForIndex([]float64{1, 2, 3}, 1))
	assert.Equal(t, 2.5, ForIndex([]float64{1, 2, 3}, 2))
	assert.Equal(t, 1.25, ForIndex([]float64{1, 1.5}, 1))
}

// Inserting at index i and re-sorting must place the new key at exactly
// index i, for every valid i.
func TestForIndex_ResultingOrder(t *testing.T) {
	sequences := [][]float64{
		{},
		{1},
		{1, 2},
		{1, 2, 3, 4, 5},
		{-3, -1.5, 0.25, 7, 100},
		{0.001, 0.002, 0.004},
	}

	for _, seq := range sequences {
		for i := 0; i <= len(seq); i++ {
			pos := ForIndex(seq, i)

			merged := make([]float64, 0, len(seq)+1)
			merged = append(merged, seq...)
			merged = append(merged, pos)
			sort.Float64s(merged)

			require.Equal(t, pos, merged[i],
				"insert into %v at %d produced %v, landed at wrong slot", seq, i, pos)
		}
	}
}

// Distinct insertion indices on the same snapshot must never map to the
// same key, since each index sees a different (before, after) pair.
func TestForIndex_DistinctGapsDistinctKeys(t *testing.T) {
	seq := []float64{1, 2, 4, 8, 16}

	seen := make(map[float64]int)
	for i := 0; i <= len(seq); i++ {
		pos := ForIndex(seq, i)
		prev, dup := seen[pos]
		require.False(t, dup, "indices %d and %d both produced %v", prev, i, pos)
		seen[pos] = i
	}
}

// Moving task X after Y in a two-task column: the snapshot excludes X, so
// the tail branch yields Y.position + 1.
func TestForIndex_MoveToTail(t *testing.T) {
	// Column held [X pos=1, Y pos=2]; X moves to index 1.
	assert.Equal(t, 3.0, ForIndex([]float64{2}, 1))
}

func TestForIndex_IndexOutOfRangeClamps(t *testing.T) {
	// Callers pass indices straight from client intents; clamp rather
	// than panic.
	assert.Equal(t, 0.0, ForIndex([]float64{1, 2}, -1))
	assert.Equal(t, 3.0, ForIndex([]float64{1, 2}, 10))
}

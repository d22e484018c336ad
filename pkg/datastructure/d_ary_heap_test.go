package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeap(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[Index](d)
		ranks := []float64{5, 3, 8, 1, 9, 2, 7}
		nodes := make([]*PriorityQueueNode[Index], len(ranks))
		for i, r := range ranks {
			nodes[i] = NewPriorityQueueNode(r, Index(i))
			h.Insert(nodes[i])
		}

		// 8 -> 0.5
		require.NoError(t, h.DecreaseKey(nodes[2], 0.5))
		assert.Error(t, h.DecreaseKey(nodes[2], 10))

		want := []Index{2, 3, 5, 1, 0, 6, 4}
		for _, w := range want {
			min, err := h.ExtractMin()
			require.NoError(t, err)
			assert.Equal(t, w, min.GetItem())
			assert.Equal(t, -1, min.GetPos())
		}
		assert.True(t, h.IsEmpty())
		_, err := h.ExtractMin()
		assert.Error(t, err)
		assert.Error(t, h.DecreaseKey(nodes[0], 0))
	}
}

func TestFloatComparison(t *testing.T) {
	assert.True(t, Eq(0.1+0.2, 0.3))
	assert.False(t, Lt(0.3, 0.1+0.2))
	assert.True(t, Le(0.1+0.2, 0.3))
	assert.True(t, Ge(0.3, 0.1+0.2))
	assert.True(t, Lt(1, 1.001))
	assert.True(t, Gt(1.001, 1))
}

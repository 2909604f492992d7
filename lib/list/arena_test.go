package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdxArena_AllocateGrowth(t *testing.T) {
	arena := newIdxArena[dNode[int]](2)
	for i := int32(0); i < 5; i++ {
		idx := arena.allocate()
		require.Equal(t, i, idx)
	}
	assert.Equal(t, 5, arena.liveObjects())
}

func TestIdxArena_ReleaseAndReuse(t *testing.T) {
	arena := newIdxArena[dNode[string]](0)
	a, b, c := arena.allocate(), arena.allocate(), arena.allocate()
	arena.at(b).value = "middle"
	require.Equal(t, uint32(0), arena.generation(b))

	arena.release(b)
	assert.Equal(t, 2, arena.liveObjects())
	assert.False(t, arena.alive(b, 0))

	// Recycled slots come back LIFO, zeroed, with a fresh generation.
	reused := arena.allocate()
	require.Equal(t, b, reused)
	assert.Equal(t, "", arena.at(reused).value)
	assert.Equal(t, uint32(1), arena.generation(reused))
	assert.True(t, arena.alive(reused, 1))
	assert.False(t, arena.alive(reused, 0))

	assert.True(t, arena.alive(a, 0))
	assert.True(t, arena.alive(c, 0))
}

func TestIdxArena_AliveBounds(t *testing.T) {
	arena := newIdxArena[sNode[int]](4)
	assert.False(t, arena.alive(nilIdx, 0))
	assert.False(t, arena.alive(0, 0))
	idx := arena.allocate()
	assert.True(t, arena.alive(idx, 0))
	assert.False(t, arena.alive(idx+1, 0))
}

func TestIdxArena_ForbidPointerType(t *testing.T) {
	require.Panics(t, func() {
		_ = newIdxArena[*int](0)
	})
}

func TestIdxArena_NegativeCapHint(t *testing.T) {
	arena := newIdxArena[dNode[int]](-8)
	idx := arena.allocate()
	require.Equal(t, int32(0), idx)
}

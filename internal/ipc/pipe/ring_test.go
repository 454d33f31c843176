package pipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRing(capacity int) *ring {
	return &ring{buf: make([]byte, capacity)}
}

func TestRingCounters(t *testing.T) {
	r := newTestRing(16)
	assert.Equal(t, 0, r.readable())
	assert.Equal(t, 16, r.writable())

	r.commitWrite(10)
	assert.Equal(t, 10, r.readable())
	assert.Equal(t, 6, r.writable())
	assert.Equal(t, 0, r.readPos())
	assert.Equal(t, 10, r.writePos())

	r.advanceRead(4)
	assert.Equal(t, 6, r.readable())
	assert.Equal(t, 10, r.writable())
	assert.Equal(t, 4, r.readPos())
}

func TestRingWrapAround(t *testing.T) {
	r := newTestRing(16)
	r.commitWrite(12)
	r.advanceRead(12)

	// start=12, count=0; an 8 byte write wraps.
	assert.Equal(t, 12, r.writePos())
	r.commitWrite(8)
	assert.Equal(t, 8, r.readable())
	assert.Equal(t, 4, r.writePos())

	r.advanceRead(8)
	assert.Equal(t, 4, r.readPos())
	assert.Equal(t, 0, r.readable())
}

func TestRingSpans(t *testing.T) {
	r := newTestRing(16)

	t.Run("contiguous", func(t *testing.T) {
		first, second := r.spans(2, 10)
		assert.Equal(t, span{2, 10}, first)
		assert.Zero(t, second.n)
	})

	t.Run("exact fit at the edge", func(t *testing.T) {
		first, second := r.spans(6, 10)
		assert.Equal(t, span{6, 10}, first)
		assert.Zero(t, second.n)
	})

	t.Run("split across the wrap", func(t *testing.T) {
		first, second := r.spans(12, 10)
		assert.Equal(t, span{12, 4}, first)
		assert.Equal(t, span{0, 6}, second)
	})
}

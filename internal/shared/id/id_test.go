package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandleID(t *testing.T) {
	hid := NewHandleID()
	assert.True(t, strings.HasPrefix(hid.String(), "fh_"))
	assert.True(t, IsValid(hid.String()))
}

func TestHandleIDsAreUnique(t *testing.T) {
	seen := make(map[HandleID]struct{})
	for i := 0; i < 1000; i++ {
		hid := NewHandleID()
		_, dup := seen[hid]
		require.False(t, dup, "duplicate id %s", hid)
		seen[hid] = struct{}{}
	}
}

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("fh_"))
	assert.False(t, IsValid("fh_not-a-ulid"))
}

func TestGeneratorWithCustomEntropy(t *testing.T) {
	g := NewGeneratorWithEntropy(strings.NewReader(strings.Repeat("0123456789abcdef", 8)))
	first := g.Generate()
	second := g.Generate()
	assert.NotEqual(t, first, second)
}

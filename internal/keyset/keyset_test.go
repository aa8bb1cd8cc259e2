package keyset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddContains(t *testing.T) {
	ks := New()
	assert.False(t, ks.Contains("a"))

	ks.Add("a")
	assert.True(t, ks.Contains("a"))
	assert.False(t, ks.Contains("b"))
}

func TestSet_AddIdempotent(t *testing.T) {
	ks := New()
	ks.Add("a")
	ks.Add("a")
	assert.Equal(t, 1, ks.Len())
}

func TestSet_Remove(t *testing.T) {
	ks := New()
	ks.Add("a")
	ks.Add("b")
	ks.Remove("a")

	assert.False(t, ks.Contains("a"))
	assert.True(t, ks.Contains("b"))
	assert.Equal(t, 1, ks.Len())
}

func TestSet_RemoveMissingIsNoop(t *testing.T) {
	ks := New()
	assert.NotPanics(t, func() { ks.Remove("missing") })
}

func TestNewWithCapacity(t *testing.T) {
	ks := NewWithCapacity(16)
	assert.Equal(t, 0, ks.Len())

	ks.Add("x")
	assert.True(t, ks.Contains("x"))
}

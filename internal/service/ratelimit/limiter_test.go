package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowDrainsAndRefills(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewWithClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("ip", 3, 1), "token %d", i)
	}
	assert.False(t, l.Allow("ip", 3, 1))

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, l.Allow("ip", 3, 1))
	assert.False(t, l.Allow("ip", 3, 1))

	now = now.Add(time.Hour)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("ip", 3, 1))
	}
	assert.False(t, l.Allow("ip", 3, 1))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	assert.True(t, l.Allow("a", 1, 0))
	assert.False(t, l.Allow("a", 1, 0))
	assert.True(t, l.Allow("b", 1, 0))
	assert.Equal(t, 2, l.Len())
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()

	require.NoError(t, c.SetBytes("k", []byte("v"), time.Minute))
	b, ok, err := c.GetBytes("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), b)
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache()

	_, ok, err := c.GetBytes("absent")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()

	require.NoError(t, c.SetBytes("k", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.GetBytes("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()

	require.NoError(t, c.SetBytes("k", []byte("v"), 0))
	time.Sleep(2 * time.Millisecond)

	_, ok, err := c.GetBytes("k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTTLCacheFlush(t *testing.T) {
	c := NewTTLCache()

	require.NoError(t, c.SetBytes("a", []byte("1"), time.Minute))
	require.NoError(t, c.SetBytes("b", []byte("2"), time.Minute))
	require.NoError(t, c.Flush())

	_, ok, err := c.GetBytes("a")
	require.NoError(t, err)
	require.False(t, ok)
}

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	require.True(t, l.Allow("fr", 2, 0.001))
	require.True(t, l.Allow("fr", 2, 0.001))
	require.False(t, l.Allow("fr", 2, 0.001))
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	require.True(t, l.Allow("fr", 1, 0.001))
	require.False(t, l.Allow("fr", 1, 0.001))
	require.True(t, l.Allow("be", 1, 0.001))
}

func TestAllowRefills(t *testing.T) {
	l := New()

	require.True(t, l.Allow("fr", 1, 100))
	time.Sleep(30 * time.Millisecond)
	require.True(t, l.Allow("fr", 1, 100))
}

func TestWaitTimesOut(t *testing.T) {
	l := New()

	require.True(t, l.Wait("fr", 1, 0.001, 10*time.Millisecond))
	require.False(t, l.Wait("fr", 1, 0.001, 10*time.Millisecond))
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-08-15")
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "15/08/2024", "2024-13-01", "not-a-date"} {
		_, ok := ParseDate(s)
		require.False(t, ok, "expected %q to fail", s)
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, def, ParseDateDefault("", def))
	require.Equal(t, def, ParseDateDefault("garbage", def))
}

func TestMonthKey(t *testing.T) {
	require.Equal(t, "2024-08", MonthKey(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2025-01", MonthKey(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
}

package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"SRPulse/internal/domain/models"
)

func TestFileCollectorRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	records := []models.RawRecord{
		{"id": "SRP_000001", "name": "Note CAC 40", "country": "FR"},
		{"id": "SRP_000002", "name": "Bond BEL 20", "country": "BE"},
	}

	require.NoError(t, SaveRecords(path, records))

	got, err := NewFileCollector(path).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "SRP_000001", got[0]["id"])
	require.Equal(t, "BE", got[1]["country"])
}

func TestFileCollectorMissingFile(t *testing.T) {
	_, err := NewFileCollector(filepath.Join(t.TempDir(), "absent.json")).Collect(context.Background())
	require.Error(t, err)
}

func TestFileCollectorMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileCollector(path).Collect(context.Background())
	require.Error(t, err)
}

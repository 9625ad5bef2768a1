package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"SRPulse/internal/domain/models"
)

func rawRecord(overrides map[string]any) models.RawRecord {
	rec := models.RawRecord{
		"id":            "SRP_000001",
		"name":          "Obligation Convertible EUR",
		"issuer":        "BNP Paribas",
		"country":       "FR",
		"currency":      "EUR",
		"issue_date":    "2024-08-15",
		"nominal_value": float64(10000),
		"type":          "bond",
		"risk":          "2",
	}
	for k, v := range overrides {
		if v == nil {
			delete(rec, k)
			continue
		}
		rec[k] = v
	}
	return rec
}

func TestNormalizeWellFormedBatch(t *testing.T) {
	records := []models.RawRecord{
		rawRecord(nil),
		rawRecord(map[string]any{
			"id":            "SRP_000002",
			"country":       "BE",
			"currency":      "USD",
			"maturity_date": "2029-08-15",
			"coupon_rate":   3.25,
			"underlying":    "S&P 500",
			"rating":        "AA",
		}),
	}

	n := NewNormalizer()
	products, failures, err := n.Normalize(records)
	require.NoError(t, err)
	require.Empty(t, failures)
	require.Len(t, products, 2)

	require.Equal(t, "SRP_000001", products[0].ID)
	require.Equal(t, models.CountryFR, products[0].Country)
	require.Nil(t, products[0].MaturityDate)

	require.Equal(t, models.CountryBE, products[1].Country)
	require.NotNil(t, products[1].MaturityDate)
	require.Equal(t, 3.25, *products[1].CouponRate)
	require.Equal(t, "S&P 500", products[1].UnderlyingAsset)
}

func TestNormalizeIsolatesBadRecords(t *testing.T) {
	records := []models.RawRecord{
		rawRecord(nil),
		rawRecord(map[string]any{"id": "SRP_000002", "issue_date": nil}),
		rawRecord(map[string]any{"id": "SRP_000003"}),
	}

	n := NewNormalizer()
	products, failures, err := n.Normalize(records)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "SRP_000001", products[0].ID)
	require.Equal(t, "SRP_000003", products[1].ID)

	require.Len(t, failures, 1)
	require.Equal(t, 1, failures[0].Index)
	require.Equal(t, "issue_date", failures[0].Field)
}

func TestNormalizeStrictAbortsOnFirstFailure(t *testing.T) {
	records := []models.RawRecord{
		rawRecord(nil),
		rawRecord(map[string]any{"id": "SRP_000002", "country": "DE"}),
		rawRecord(map[string]any{"id": "SRP_000003"}),
	}

	n := NewNormalizer(WithStrict(true))
	products, failures, err := n.Normalize(records)
	require.Error(t, err)
	require.Nil(t, products)
	require.Nil(t, failures)

	f, ok := err.(models.RecordFailure)
	require.True(t, ok)
	require.Equal(t, 1, f.Index)
	require.Equal(t, "country", f.Field)
}

func TestNormalizeDuplicateID(t *testing.T) {
	records := []models.RawRecord{
		rawRecord(nil),
		rawRecord(map[string]any{"name": "Same ID Again"}),
	}

	n := NewNormalizer()
	products, failures, err := n.Normalize(records)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, failures, 1)
	require.Equal(t, "id", failures[0].Field)
	require.Equal(t, 1, failures[0].Index)
}

func TestNormalizeNumericCoercions(t *testing.T) {
	records := []models.RawRecord{
		rawRecord(map[string]any{"nominal_value": "25000.50"}),
		rawRecord(map[string]any{"id": "SRP_000002", "nominal_value": 5000}),
	}

	products, failures, err := NewNormalizer().Normalize(records)
	require.NoError(t, err)
	require.Empty(t, failures)
	require.Equal(t, 25000.50, products[0].NominalValue)
	require.Equal(t, 5000.0, products[1].NominalValue)
}

func TestNormalizeRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		name  string
		rec   models.RawRecord
		field string
	}{
		{"missing id", rawRecord(map[string]any{"id": nil}), "id"},
		{"empty issuer", rawRecord(map[string]any{"issuer": ""}), "issuer"},
		{"bad date", rawRecord(map[string]any{"issue_date": "15/08/2024"}), "issue_date"},
		{"date wrong type", rawRecord(map[string]any{"issue_date": float64(20240815)}), "issue_date"},
		{"unparsable nominal", rawRecord(map[string]any{"nominal_value": "lots"}), "nominal_value"},
		{"nominal wrong type", rawRecord(map[string]any{"nominal_value": true}), "nominal_value"},
		{"risk out of range", rawRecord(map[string]any{"risk": "7"}), "risk"},
		{"unknown type", rawRecord(map[string]any{"type": "cdo"}), "type"},
		{"maturity before issue", rawRecord(map[string]any{"maturity_date": "2020-01-01"}), "maturity_date"},
		{"negative nominal", rawRecord(map[string]any{"nominal_value": float64(-1)}), "nominal_value"},
	}

	n := NewNormalizer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products, failures, err := n.Normalize([]models.RawRecord{tc.rec})
			require.NoError(t, err)
			require.Empty(t, products)
			require.Len(t, failures, 1)
			require.Equal(t, tc.field, failures[0].Field)
		})
	}
}

func TestNormalizeEmptyBatch(t *testing.T) {
	products, failures, err := NewNormalizer().Normalize(nil)
	require.NoError(t, err)
	require.Empty(t, products)
	require.Empty(t, failures)
}

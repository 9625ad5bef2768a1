package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"SRPulse/internal/domain/models"
	"SRPulse/internal/export"
	"SRPulse/internal/service/cache"
	"SRPulse/internal/usecase"
	xlogger "SRPulse/pkg/logger"
)

func testHandler(t *testing.T) (*AnalysisEchoHandler, *echo.Echo) {
	t.Helper()
	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	issued := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "SRP_1", Name: "Note CAC 40", Issuer: "BNP Paribas", Country: models.CountryFR, Currency: models.CurrencyEUR, IssueDate: issued, NominalValue: 10000, ProductType: models.TypeNote, RiskLevel: models.RiskMedium},
		{ID: "SRP_2", Name: "Bond BEL 20", Issuer: "KBC", Country: models.CountryBE, Currency: models.CurrencyUSD, IssueDate: issued.AddDate(0, 1, 0), NominalValue: 25000, ProductType: models.TypeBond, RiskLevel: models.RiskVeryLow},
		{ID: "SRP_3", Name: "Certificat", Issuer: "BNP Paribas", Country: models.CountryFR, Currency: models.CurrencyEUR, IssueDate: issued, NominalValue: 5000, ProductType: models.TypeCertificate, RiskLevel: models.RiskHigh},
	}

	h := NewAnalysisEchoHandler(logger, products, usecase.NewReportBuilder(), export.NewHTMLReport(t.TempDir(), "report.html"))
	h.SetCache(cache.NewTTLCache(), time.Minute)

	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAnalyzeFullCollection(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := envelope(t, rec)
	require.Equal(t, float64(http.StatusOK), body["status"])
	doc := body["data"].(map[string]any)
	require.Equal(t, 3.0, doc["total_products"])
	require.Equal(t, 40000.0, doc["total_value"])
}

func TestAnalyzeFiltered(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {"country": "FR"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := envelope(t, rec)["data"].(map[string]any)
	require.Equal(t, 2.0, doc["total_products"])
	require.Equal(t, 15000.0, doc["total_value"])
}

func TestAnalyzeUnknownCriterionRejected(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {"contry": "FR"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := envelope(t, rec)
	require.Equal(t, float64(http.StatusBadRequest), body["status"])
	errs := body["data"].([]any)
	first := errs[0].(map[string]any)
	require.Equal(t, "ERR_CRITERIA", first["code"])
	require.Equal(t, "contry", first["field"])
	require.Equal(t, "unknown filter criterion", first["message"])
}

func TestAnalyzeTopNOutOfRange(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {}, "top_n": 500}`)
	body := envelope(t, rec)
	require.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestAnalyzeCachedResponseStable(t *testing.T) {
	_, e := testHandler(t)

	first := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {"currency": "EUR"}}`)
	second := doJSON(e, http.MethodPost, "/api/analyze", `{"criteria": {"currency": "EUR"}}`)
	require.Equal(t, http.StatusOK, second.Code)

	// The second call is served from cache, including the timestamp.
	require.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestFilterEndpoint(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/filter", `{"criteria": {"issuer": "bnp"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope(t, rec)["data"].(map[string]any)
	require.Equal(t, 2.0, data["total"])
	rows := data["rows"].([]any)
	require.Len(t, rows, 2)
}

func TestFilterRequiresCriteria(t *testing.T) {
	_, e := testHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/filter", `{}`)
	body := envelope(t, rec)
	require.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestSummaryEndpoint(t *testing.T) {
	_, e := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope(t, rec)["data"].(map[string]any)
	require.Equal(t, 3.0, data["total_count"])
	require.ElementsMatch(t, []any{"FR", "BE"}, data["countries"].([]any))
}

func TestReportEndpoint(t *testing.T) {
	_, e := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	require.Contains(t, rec.Body.String(), "BNP Paribas")
}

func TestHealthEndpoint(t *testing.T) {
	_, e := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope(t, rec)["data"].(map[string]any)
	require.Equal(t, "ok", data["status"])
	require.Equal(t, 3.0, data["products"])
}

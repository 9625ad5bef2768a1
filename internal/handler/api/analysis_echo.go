package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SRPulse/internal/domain/models"
	domrepo "SRPulse/internal/domain/repository"
	"SRPulse/internal/export"
	icache "SRPulse/internal/service/cache"
	"SRPulse/internal/usecase"
	xhttp "SRPulse/pkg/http"
	xlogger "SRPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler serves ad-hoc analyses over the collection loaded at
// startup. The collection is read-only after load, so handlers run
// concurrently without coordination; only the cache is shared mutable state.
type AnalysisEchoHandler struct {
	logger   *xlogger.Logger
	products []models.Product
	builder  *usecase.ReportBuilder
	report   *export.HTMLReport
	cache    icache.DocumentCache
	metrics  domrepo.Metrics
	cacheTTL time.Duration
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, products []models.Product, builder *usecase.ReportBuilder, report *export.HTMLReport) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{
		logger:   logger,
		products: products,
		builder:  builder,
		report:   report,
		cacheTTL: 5 * time.Minute,
	}
}

// SetCache injects the analysis-document cache.
func (h *AnalysisEchoHandler) SetCache(c icache.DocumentCache, ttl time.Duration) {
	h.cache = c
	if ttl > 0 {
		h.cacheTTL = ttl
	}
}

// SetMetrics injects the metrics recorder.
func (h *AnalysisEchoHandler) SetMetrics(m domrepo.Metrics) { h.metrics = m }

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/analyze", h.Analyze)
	g.POST("/filter", h.Filter)
	g.GET("/summary", h.Summary)
	g.GET("/report", h.Report)
	e.GET("/healthz", h.Health)
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	start := time.Now()
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	criteria, err := models.CriteriaFromMap(req.Criteria)
	if err != nil {
		return h.criteriaError(c, err)
	}

	key := fmt.Sprintf("analyze:%s:top%d", criteria.CacheKey(), req.TopN)
	if doc, ok := h.cached(key); ok {
		return xhttp.SuccessResponse(c, doc)
	}

	subset := usecase.Filter(h.products, criteria)
	res := usecase.NewAnalyzer(usecase.WithTopIssuers(req.TopN)).Analyze(subset)
	doc := h.builder.Document(res)

	h.store(key, doc)
	h.observe("analyze", criteria, start)
	return xhttp.SuccessResponse(c, doc)
}

func (h *AnalysisEchoHandler) Filter(c echo.Context) error {
	start := time.Now()
	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	criteria, err := models.CriteriaFromMap(req.Criteria)
	if err != nil {
		return h.criteriaError(c, err)
	}

	subset := usecase.Filter(h.products, criteria)
	if h.metrics != nil {
		h.metrics.RecordLatency("filter", time.Since(start).Seconds())
	}
	return xhttp.ListResponse(c, subset, int64(len(subset)))
}

func (h *AnalysisEchoHandler) Summary(c echo.Context) error {
	summary := usecase.NewAnalyzer().Summarize(h.products)
	return xhttp.SuccessResponse(c, summary)
}

func (h *AnalysisEchoHandler) Report(c echo.Context) error {
	start := time.Now()
	res := usecase.NewAnalyzer().Analyze(h.products)
	html, err := h.report.Render(res)
	if err != nil {
		h.logger.Error("report render error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("report rendering failed").WithError(err))
	}
	h.observe("report", models.FilterCriteria{}, start)
	return c.HTML(200, html)
}

func (h *AnalysisEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]any{
		"status":   "ok",
		"products": len(h.products),
	})
}

func (h *AnalysisEchoHandler) criteriaError(c echo.Context, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return xhttp.AppErrorResponse(c, xhttp.CriteriaError(verr.Field, verr.Reason))
	}
	h.logger.Error("criteria decode error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("criteria decode failed").WithError(err))
}

func (h *AnalysisEchoHandler) cached(key string) (map[string]any, bool) {
	if h.cache == nil {
		return nil, false
	}
	b, ok, err := h.cache.GetBytes(key)
	if err != nil || !ok {
		return nil, false
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (h *AnalysisEchoHandler) store(key string, doc map[string]any) {
	if h.cache == nil {
		return
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(key, b, h.cacheTTL); err != nil {
		h.logger.Warn("analysis cache write failed", xlogger.Error(err))
	}
}

func (h *AnalysisEchoHandler) observe(op string, criteria models.FilterCriteria, start time.Time) {
	if h.metrics == nil {
		return
	}
	scope := "full"
	if !criteria.Empty() {
		scope = "filtered"
	}
	h.metrics.RecordAnalysis(scope)
	h.metrics.RecordLatency(op, time.Since(start).Seconds())
}

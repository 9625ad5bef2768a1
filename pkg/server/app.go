package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"SRPulse/internal/domain/models"
	domrepo "SRPulse/internal/domain/repository"
	"SRPulse/internal/export"
	"SRPulse/internal/handler/api"
	icache "SRPulse/internal/service/cache"
	"SRPulse/internal/service/collector"
	"SRPulse/internal/usecase"
	"SRPulse/pkg/config"
	xhttp "SRPulse/pkg/http"
	xlogger "SRPulse/pkg/logger"
)

// App runs the collect -> normalize -> analyze -> export workflow, and
// optionally serves the analysis API over the loaded collection.
type App struct {
	cfg     *config.Config
	logger  *xlogger.Logger
	source  domrepo.RecordSource
	metrics domrepo.Metrics
	cache   icache.DocumentCache

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *xlogger.Logger,
	source domrepo.RecordSource,
	metrics domrepo.Metrics,
	cache icache.DocumentCache,
) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		source:  source,
		metrics: metrics,
		cache:   cache,
	}
}

// SetSource replaces the record source (file, API, or sample generator).
func (a *App) SetSource(s domrepo.RecordSource) { a.source = s }

// Collect fetches the raw batch and saves it to the output dir.
func (a *App) Collect(ctx context.Context) ([]models.RawRecord, error) {
	records, err := a.source.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	a.logger.Info("batch collected", xlogger.Int("records", len(records)))

	if err := os.MkdirAll(a.cfg.Export.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	path := filepath.Join(a.cfg.Export.OutputDir, a.cfg.Export.ProductsFile)
	if err := collector.SaveRecords(path, records); err != nil {
		a.logger.Warn("raw batch save failed", xlogger.Error(err))
	}
	return records, nil
}

// Normalize converts the raw batch into the canonical collection, logging
// per-record failures without aborting the batch (unless strict).
func (a *App) Normalize(records []models.RawRecord) ([]models.Product, error) {
	norm := usecase.NewNormalizer(usecase.WithStrict(a.cfg.Analysis.Strict))
	products, failures, err := norm.Normalize(records)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	for _, f := range failures {
		a.logger.Warn("record rejected",
			xlogger.Int("index", f.Index),
			xlogger.String("field", f.Field),
			xlogger.String("reason", f.Reason),
		)
	}
	if a.metrics != nil {
		for range products {
			a.metrics.RecordNormalized("ok")
		}
		for range failures {
			a.metrics.RecordNormalized("failed")
		}
		a.metrics.SetProductsLoaded(len(products))
	}
	a.logger.Info("batch normalized",
		xlogger.Int("products", len(products)),
		xlogger.Int("failures", len(failures)),
	)
	return products, nil
}

// Analyze runs the full analysis and exports every configured rendition.
func (a *App) Analyze(products []models.Product) (*models.AnalysisResult, error) {
	start := time.Now()
	analyzer := usecase.NewAnalyzer(usecase.WithTopIssuers(a.cfg.Analysis.TopIssuers))
	res := analyzer.Analyze(products)
	if a.metrics != nil {
		a.metrics.RecordAnalysis("full")
		a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	}

	doc := usecase.NewReportBuilder().Document(res)
	exporters := []domrepo.Exporter{
		export.NewJSONWriter(a.cfg.Export.OutputDir, a.cfg.Export.AnalysisFile),
		export.NewHTMLReport(a.cfg.Export.OutputDir, a.cfg.Export.ReportFile),
		export.NewExcelWorkbook(a.cfg.Export.OutputDir, a.cfg.Export.WorkbookFile),
	}
	for _, e := range exporters {
		path, err := e.Export(doc, res)
		if err != nil {
			a.logger.Error("export failed", xlogger.Error(err))
			continue
		}
		a.logger.Info("exported", xlogger.String("path", path))
	}

	a.logSummary(res)
	return res, nil
}

// RunWorkflow executes the one-shot collect/normalize/analyze/export pipeline.
func (a *App) RunWorkflow(ctx context.Context) error {
	records, err := a.Collect(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records collected")
	}
	products, err := a.Normalize(records)
	if err != nil {
		return err
	}
	_, err = a.Analyze(products)
	return err
}

// Serve loads the collection once and serves the analysis API until
// interrupted.
func (a *App) Serve(ctx context.Context) error {
	records, err := a.Collect(ctx)
	if err != nil {
		return err
	}
	products, err := a.Normalize(records)
	if err != nil {
		return err
	}

	builder := usecase.NewReportBuilder()
	report := export.NewHTMLReport(a.cfg.Export.OutputDir, a.cfg.Export.ReportFile)
	h := api.NewAnalysisEchoHandler(a.logger, products, builder, report)
	if a.cache != nil {
		h.SetCache(a.cache, a.cfg.Analysis.CacheTTL)
	}
	if a.metrics != nil {
		h.SetMetrics(a.metrics)
	}

	a.httpServer = xhttp.NewServer(h,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}
	a.logger.Info("serving analysis API",
		xlogger.Int("port", a.cfg.Server.Port),
		xlogger.Int("products", len(products)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) logSummary(res *models.AnalysisResult) {
	a.logger.Info("analysis complete",
		xlogger.Int("total_products", res.TotalProducts),
		xlogger.Float64("total_value", res.TotalValue),
		xlogger.Float64("average_value", res.AverageValue),
		xlogger.Int("countries", len(res.ByCountry)),
		xlogger.Int("months", len(res.MonthlyTrend)),
	)
	if len(res.TopIssuers) > 0 {
		top := res.TopIssuers[0]
		a.logger.Info("top issuer",
			xlogger.String("issuer", top.Issuer),
			xlogger.Int("count", top.Count),
			xlogger.Float64("total_value", top.TotalValue),
		)
	}
}

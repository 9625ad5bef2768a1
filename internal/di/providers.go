package di

import (
	domrepo "SRPulse/internal/domain/repository"
	icache "SRPulse/internal/service/cache"
	"SRPulse/internal/service/collector"
	"SRPulse/pkg/config"
	"SRPulse/pkg/logger"
	"SRPulse/pkg/metrics"
	"SRPulse/pkg/server"
	"SRPulse/pkg/util"
	"time"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the analysis-document cache: Redis when configured,
// otherwise the in-process TTL cache.
func ProvideCache(cfg *config.Config) icache.DocumentCache {
	if cfg.Analysis.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Analysis.Redis.Addr,
			Password: cfg.Analysis.Redis.Password,
			DB:       cfg.Analysis.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideRecordSource creates the default record source: the upstream API
// feed. main swaps in a file or sample source per flags via App.SetSource.
func ProvideRecordSource(cfg *config.Config, l *logger.Logger) domrepo.RecordSource {
	var from, to time.Time
	from = util.ParseDateDefault(cfg.Collector.StartDate, time.Time{})
	to = util.ParseDateDefault(cfg.Collector.EndDate, time.Time{})

	return collector.NewAPICollector(
		cfg.Collector.BaseURL,
		cfg.Collector.APIKey,
		cfg.Collector.Countries,
		cfg.Collector.Timeout,
		collector.WithDateRange(from, to),
		collector.WithMaxRetries(cfg.Collector.MaxRetries),
		collector.WithRate(cfg.Collector.RatePerSec),
		collector.WithLogger(l),
	)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	source domrepo.RecordSource,
	m domrepo.Metrics,
	c icache.DocumentCache,
) *server.App {
	return server.New(cfg, l, source, m, c)
}

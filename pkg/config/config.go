package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Collector struct {
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		Countries  []string      `yaml:"countries"`
		StartDate  string        `yaml:"start_date"`
		EndDate    string        `yaml:"end_date"`
	} `yaml:"collector"`
	Analysis struct {
		TopIssuers int           `yaml:"top_issuers"`
		Strict     bool          `yaml:"strict"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"analysis"`
	Export struct {
		OutputDir    string `yaml:"output_dir"`
		ProductsFile string `yaml:"products_file"`
		AnalysisFile string `yaml:"analysis_file"`
		ReportFile   string `yaml:"report_file"`
		WorkbookFile string `yaml:"workbook_file"`
	} `yaml:"export"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SRP_API_BASE_URL"); v != "" {
		c.Collector.BaseURL = v
	}
	if v := os.Getenv("SRP_API_KEY"); v != "" {
		c.Collector.APIKey = v
	}
	if v := os.Getenv("SRP_COUNTRIES"); v != "" {
		c.Collector.Countries = strings.Split(v, ",")
	}
	if v := os.Getenv("SRP_REDIS_ADDR"); v != "" {
		c.Analysis.Redis.Enabled = true
		c.Analysis.Redis.Addr = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Collector.Timeout == 0 {
		c.Collector.Timeout = 30 * time.Second
	}
	if c.Collector.MaxRetries == 0 {
		c.Collector.MaxRetries = 3
	}
	if c.Collector.RatePerSec == 0 {
		c.Collector.RatePerSec = 5
	}
	if len(c.Collector.Countries) == 0 {
		c.Collector.Countries = []string{"FR", "BE"}
	}
	if c.Analysis.TopIssuers == 0 {
		c.Analysis.TopIssuers = 10
	}
	if c.Analysis.CacheTTL == 0 {
		c.Analysis.CacheTTL = 5 * time.Minute
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "output"
	}
	if c.Export.ProductsFile == "" {
		c.Export.ProductsFile = "srp_products.json"
	}
	if c.Export.AnalysisFile == "" {
		c.Export.AnalysisFile = "srp_analysis.json"
	}
	if c.Export.ReportFile == "" {
		c.Export.ReportFile = "srp_report.html"
	}
	if c.Export.WorkbookFile == "" {
		c.Export.WorkbookFile = "srp_analysis.xlsx"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Analysis.TopIssuers < 1 {
		return fmt.Errorf("analysis.top_issuers must be at least 1")
	}
	if c.Analysis.Redis.Enabled && c.Analysis.Redis.Addr == "" {
		return fmt.Errorf("analysis.redis.addr is required when redis is enabled")
	}
	for _, country := range c.Collector.Countries {
		if country != "FR" && country != "BE" {
			return fmt.Errorf("collector.countries: unsupported country %q", country)
		}
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"SRPulse/internal/di"
	"SRPulse/internal/service/collector"
	"SRPulse/internal/service/sample"
	"SRPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	fromFile := flag.String("from-file", "", "analyze a JSON batch file instead of the API feed")
	sampleCount := flag.Int("sample", 0, "generate N synthetic records instead of collecting")
	serve := flag.Bool("serve", false, "serve the analysis API instead of the one-shot workflow")
	collectOnly := flag.Bool("collect-only", false, "collect and save the raw batch, skip analysis")
	analyzeOnly := flag.Bool("analyze-only", false, "analyze the previously saved batch, skip collection")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s countries=%v output=%s", cfg.Environment, cfg.Collector.Countries, cfg.Export.OutputDir)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Flags override the default API source
	switch {
	case *fromFile != "":
		app.SetSource(collector.NewFileCollector(*fromFile))
	case *analyzeOnly:
		saved := filepath.Join(cfg.Export.OutputDir, cfg.Export.ProductsFile)
		app.SetSource(collector.NewFileCollector(saved))
	case *sampleCount > 0:
		app.SetSource(sample.New(*sampleCount))
	}

	ctx := context.Background()
	switch {
	case *serve:
		err = app.Serve(ctx)
	case *collectOnly:
		_, err = app.Collect(ctx)
	default:
		err = app.RunWorkflow(ctx)
	}
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}

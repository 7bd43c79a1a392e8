package main

import (
	"fmt"

	"github.com/adverant/nexus/nid-worker/internal/cache"
	"github.com/adverant/nexus/nid-worker/internal/config"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/nid"
	"github.com/adverant/nexus/nid-worker/internal/processor"
	"github.com/adverant/nexus/nid-worker/internal/processor/tesseract"
)

// newProcessor builds one OCR service per card side and the processor over them.
func newProcessor(cfg *config.Config, useCache bool) (*processor.NIDProcessor, error) {
	front, err := newOCRService(cfg, "front", cfg.FrontLanguages)
	if err != nil {
		return nil, err
	}

	back, err := newOCRService(cfg, "back", cfg.BackLanguages)
	if err != nil {
		return nil, err
	}

	return processor.NewNIDProcessor(&processor.ProcessorConfig{
		Front:    front,
		Back:     back,
		UseCache: cfg.EnableCache && useCache,
		Logger:   logging.NewLogger("nid-processor"),
	})
}

func newOCRService(cfg *config.Config, side string, languages []string) (*processor.OCRService, error) {
	rec, err := tesseract.New(&tesseract.Config{
		Languages:      languages,
		TessdataPrefix: cfg.TessdataPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s recognizer: %w", side, err)
	}

	results, err := cache.New[nid.TokenStream](cache.Options{
		Enabled: cfg.EnableCache,
		MaxSize: cfg.CacheMaxSize,
		TTL:     cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s cache: %w", side, err)
	}

	return processor.NewOCRService(&processor.OCRServiceConfig{
		Name:                side,
		Recognizer:          rec,
		Cache:               results,
		MaxFileSize:         cfg.MaxFileSize,
		AllowedExtensions:   cfg.AllowedExtensions,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		Logger:              logging.NewLogger("ocr-" + side),
	})
}

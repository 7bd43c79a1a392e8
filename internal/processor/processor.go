/**
 * NID Processor
 *
 * Runs both card sides through their OCR services and feeds the resulting
 * token streams to the field extractors:
 * - front side: name, date of birth, NID number
 * - back side: address, blood group
 */

package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adverant/nexus/nid-worker/internal/errors"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/nid"
)

// ProcessorInterface defines the interface for card processing
type ProcessorInterface interface {
	Process(ctx context.Context, front, back Image) (*Extraction, error)
}

// ProcessorConfig holds processor configuration
type ProcessorConfig struct {
	Front    *OCRService
	Back     *OCRService
	UseCache bool
	Logger   *logging.Logger
}

// NIDProcessor extracts structured fields from a front/back image pair.
type NIDProcessor struct {
	front    *OCRService
	back     *OCRService
	useCache bool
	logger   *logging.Logger
}

// NewNIDProcessor creates a new NID processor
func NewNIDProcessor(cfg *ProcessorConfig) (*NIDProcessor, error) {
	if cfg == nil || cfg.Front == nil || cfg.Back == nil {
		return nil, fmt.Errorf("front and back OCR services are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("nid-processor")
	}

	return &NIDProcessor{
		front:    cfg.Front,
		back:     cfg.Back,
		useCache: cfg.UseCache,
		logger:   logger,
	}, nil
}

// Process recognizes both sides and returns the extracted fields.
func (p *NIDProcessor) Process(ctx context.Context, front, back Image) (*Extraction, error) {
	start := time.Now()
	requestID := uuid.New().String()
	log := p.logger.With("request_id", requestID)

	log.Info("processing NID card", "front", front.Filename, "back", back.Filename)

	frontStream, err := p.front.ExtractText(ctx, requestID, front, p.useCache)
	if err != nil {
		return nil, err
	}
	if !frontStream.Success {
		return nil, errors.NewOCRFailedError(requestID, "front", fmt.Errorf("%s", frontStream.Error))
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewProcessingTimeoutError(requestID, time.Since(start), err)
	}

	backStream, err := p.back.ExtractText(ctx, requestID, back, p.useCache)
	if err != nil {
		return nil, err
	}
	if !backStream.Success {
		return nil, errors.NewOCRFailedError(requestID, "back", fmt.Errorf("%s", backStream.Error))
	}

	frontFields := nid.ParseFront(frontStream)
	backFields := nid.ParseBack(backStream)

	result := &Extraction{
		RequestID:        requestID,
		Front:            frontFields,
		Back:             backFields,
		ProcessingTimeMs: milliseconds(time.Since(start)),
	}

	log.Info("front side extracted",
		"name_found", frontFields.Name != "",
		"dob_found", frontFields.DateOfBirth != "",
		"nid_found", frontFields.IDNumber != "",
		"total_texts", len(frontFields.RawText),
	)
	log.Info("back side extracted",
		"address_found", backFields.Address != "",
		"blood_group_found", backFields.BloodGroup != "",
		"total_texts", len(backFields.RawText),
		"bengali_texts", nid.CountBengali(backFields.RawText),
	)
	log.Info("NID card processed", "processing_time_ms", fmt.Sprintf("%.2f", result.ProcessingTimeMs))

	return result, nil
}

// CacheStats returns the cache view of both sides, front first.
func (p *NIDProcessor) CacheStats() []CacheStats {
	return []CacheStats{p.front.CacheStats(), p.back.CacheStats()}
}

// ClearCache empties both caches and returns the total number of entries dropped.
func (p *NIDProcessor) ClearCache() int {
	return p.front.ClearCache() + p.back.ClearCache()
}

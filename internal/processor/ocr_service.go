/**
 * OCR Service - cached front-end over a Recognizer
 *
 * Validates an upload, looks its content digest up in the result cache and
 * only calls the recognizer on a miss. Concurrent misses for the same image
 * each run the recognizer; the last one to finish overwrites the entry.
 */

package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adverant/nexus/nid-worker/internal/cache"
	"github.com/adverant/nexus/nid-worker/internal/errors"
	"github.com/adverant/nexus/nid-worker/internal/logging"
	"github.com/adverant/nexus/nid-worker/internal/nid"
)

// OCRServiceConfig holds OCR service configuration
type OCRServiceConfig struct {
	Name                string
	Recognizer          Recognizer
	Cache               *cache.Cache[nid.TokenStream]
	MaxFileSize         int64
	AllowedExtensions   []string
	ConfidenceThreshold float64
	Logger              *logging.Logger
}

// OCRService turns image bytes into a TokenStream, consulting its cache.
type OCRService struct {
	name                string
	recognizer          Recognizer
	cache               *cache.Cache[nid.TokenStream]
	maxFileSize         int64
	allowedExtensions   []string
	confidenceThreshold float64
	logger              *logging.Logger
}

// NewOCRService creates a new OCR service
func NewOCRService(cfg *OCRServiceConfig) (*OCRService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if cfg.Recognizer == nil {
		return nil, fmt.Errorf("recognizer is required")
	}

	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}

	name := cfg.Name
	if name == "" {
		name = cfg.Recognizer.Name()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewLogger("ocr-" + name)
	}

	allowed := make([]string, 0, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed = append(allowed, strings.TrimPrefix(strings.ToLower(ext), "."))
	}

	return &OCRService{
		name:                name,
		recognizer:          cfg.Recognizer,
		cache:               cfg.Cache,
		maxFileSize:         cfg.MaxFileSize,
		allowedExtensions:   allowed,
		confidenceThreshold: cfg.ConfidenceThreshold,
		logger:              logger,
	}, nil
}

// ExtractText validates img, then returns the cached or freshly recognized
// token stream. A recognizer failure is reported inside the stream
// (Success=false); only invalid input and cancellation return an error.
func (s *OCRService) ExtractText(ctx context.Context, jobID string, img Image, useCache bool) (nid.TokenStream, error) {
	start := time.Now()

	if err := s.validate(jobID, img); err != nil {
		return nid.TokenStream{}, err
	}

	key := cache.KeyOf(img.Data)
	if useCache {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.Debug("cache hit", "job_id", jobID, "cache_key", key.Short())
			return cached, nil
		}
		s.logger.Debug("cache miss", "job_id", jobID, "cache_key", key.Short())
	}

	s.logger.Info("starting OCR",
		"job_id", jobID,
		"filename", img.Filename,
		"image_size", len(img.Data),
		"languages", s.recognizer.Languages(),
	)

	tokens, err := s.recognizer.Recognize(ctx, img.Data)
	elapsed := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return nid.TokenStream{}, errors.NewProcessingTimeoutError(jobID, elapsed, ctx.Err())
		}
		s.logger.Error("OCR failed", "job_id", jobID, "filename", img.Filename, "error", err)
		return nid.TokenStream{
			Success:          false,
			Tokens:           []nid.Token{},
			ProcessingTimeMs: milliseconds(elapsed),
			Error:            err.Error(),
		}, nil
	}

	kept := make([]nid.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Confidence >= s.confidenceThreshold {
			kept = append(kept, tok)
		}
	}

	if len(kept) == 0 && len(tokens) > 0 {
		s.logger.Warn("texts detected but filtered by confidence threshold",
			"job_id", jobID,
			"filename", img.Filename,
			"threshold", s.confidenceThreshold,
			"detected", len(tokens),
		)
	}

	stream := nid.TokenStream{
		Success:          true,
		Tokens:           kept,
		ProcessingTimeMs: milliseconds(time.Since(start)),
	}

	if useCache {
		if evicted, ok := s.cache.Put(key, stream); ok {
			s.logger.Debug("cache full, removed oldest entry", "cache_key", evicted.Short())
		}
	}

	s.logger.Info("OCR completed",
		"job_id", jobID,
		"filename", img.Filename,
		"texts_found", len(kept),
		"total_detected", len(tokens),
		"processing_time_ms", fmt.Sprintf("%.2f", stream.ProcessingTimeMs),
	)

	return stream, nil
}

func (s *OCRService) validate(jobID string, img Image) error {
	if len(img.Data) == 0 {
		return errors.NewInvalidInputError(jobID, fmt.Sprintf("image %q is empty", img.Filename))
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(img.Filename)), ".")
	allowed := false
	for _, a := range s.allowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.NewUnsupportedFormatError(jobID, img.Filename, s.allowedExtensions)
	}

	if s.maxFileSize > 0 && int64(len(img.Data)) > s.maxFileSize {
		return errors.NewFileTooLargeError(jobID, img.Filename, int64(len(img.Data)), s.maxFileSize)
	}

	return nil
}

// ClearCache drops every cached stream and returns how many there were.
func (s *OCRService) ClearCache() int {
	n := s.cache.Clear()
	s.logger.Info("cleared cache entries", "count", n)
	return n
}

// CacheStats reports cache occupancy for this service.
func (s *OCRService) CacheStats() CacheStats {
	return CacheStats{
		Stats:     s.cache.Stats(),
		Service:   s.name,
		Languages: s.recognizer.Languages(),
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

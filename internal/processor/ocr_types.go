/**
 * OCR Types - Shared data structures for the NID processor
 */

package processor

import (
	"context"

	"github.com/adverant/nexus/nid-worker/internal/cache"
	"github.com/adverant/nexus/nid-worker/internal/nid"
)

// Recognizer is the external OCR engine. Tokens must come back in
// reading order.
type Recognizer interface {
	Name() string
	Languages() []string
	Recognize(ctx context.Context, imageData []byte) ([]nid.Token, error)
}

// Image is one uploaded card side.
type Image struct {
	Filename string
	Data     []byte
}

// Extraction is the combined result for one card.
type Extraction struct {
	RequestID        string          `json:"request_id" yaml:"request_id"`
	Front            nid.FrontFields `json:"nid_front" yaml:"nid_front"`
	Back             nid.BackFields  `json:"nid_back" yaml:"nid_back"`
	ProcessingTimeMs float64         `json:"processing_time_ms" yaml:"processing_time_ms"`
}

// CacheStats is the cache view of one OCR service.
type CacheStats struct {
	cache.Stats `yaml:",inline"`
	Service     string   `json:"service" yaml:"service"`
	Languages   []string `json:"languages" yaml:"languages"`
}

/**
 * Tesseract recognizer
 *
 * Local, offline OCR through gosseract. Each recognized text line becomes
 * one token, in Tesseract's reading order, with its confidence scaled to
 * [0,1] and its rectangle expressed as four corner points.
 */

package tesseract

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/adverant/nexus/nid-worker/internal/nid"
)

// Config holds Tesseract configuration
type Config struct {
	Languages      []string
	TessdataPrefix string
}

// Recognizer turns image bytes into a token sequence using Tesseract.
type Recognizer struct {
	languages      []string
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
}

// New creates a Tesseract recognizer for the given languages.
func New(cfg *Config) (*Recognizer, error) {
	if cfg == nil || len(cfg.Languages) == 0 {
		return nil, fmt.Errorf("at least one tesseract language is required")
	}

	return &Recognizer{
		languages:      cfg.Languages,
		tessdataPrefix: cfg.TessdataPrefix,
		clientFactory:  gosseract.NewClient,
	}, nil
}

func (r *Recognizer) Name() string { return "tesseract" }

func (r *Recognizer) Languages() []string { return r.languages }

// Recognize runs Tesseract on one image. The call itself is not
// interruptible; ctx is checked before the client is created.
func (r *Recognizer) Recognize(ctx context.Context, imageData []byte) ([]nid.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := r.clientFactory()
	defer client.Close()

	if r.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(r.tessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(r.languages...); err != nil {
		return nil, fmt.Errorf("failed to set languages: %w", err)
	}

	if err := client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	return tokensFromBoxes(boxes), nil
}

func tokensFromBoxes(boxes []gosseract.BoundingBox) []nid.Token {
	tokens := make([]nid.Token, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		tokens = append(tokens, nid.Token{
			Text:        text,
			Confidence:  clampConfidence(b.Confidence / 100.0),
			BoundingBox: corners(b.Box),
		})
	}
	return tokens
}

// corners lists the rectangle clockwise from the top-left.
func corners(r image.Rectangle) []nid.Point {
	return []nid.Point{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
	}
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

/**
 * NID Worker - Main Entry Point
 *
 * Extracts structured fields from Bangladeshi national ID card images.
 *
 * Architecture:
 * - Tesseract recognizer per card side (English front, Bengali + English back)
 * - Content-addressed OCR result cache per side
 * - Heuristic field extraction over the recognized token stream
 * - In-process worker pool for directory batches
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

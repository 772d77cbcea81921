// Package analysis defines the external image-analysis collaborator:
// garment classification and background removal. The wardrobe treats
// it as opaque; failures are surfaced to the caller and never retried
// automatically.
package analysis

import (
	"context"
	"errors"

	"digistyle/internal/model"
)

// Common errors returned by the analysis package.
var (
	// ErrAnalysisFailed is returned when classification fails for any
	// general reason (network, model, malformed image).
	ErrAnalysisFailed = errors.New("failed to analyze image")

	// ErrBackgroundRemovalFailed is returned when background removal fails.
	ErrBackgroundRemovalFailed = errors.New("failed to remove image background")

	// ErrInvalidResponse is returned when the model response cannot be
	// parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from analysis model")

	// ErrInvalidConfig is returned when the service configuration is invalid.
	ErrInvalidConfig = errors.New("invalid analysis service configuration")
)

// Classification is the structured result of analyzing a garment photo.
type Classification struct {
	Category         model.Category `json:"category"`
	SubCategory      string         `json:"subCategory"`
	Colors           []string       `json:"colors"`
	Seasons          []model.Season `json:"seasons"`
	Tags             []string       `json:"tags"`
	StyleDescription string         `json:"styleDescription"`
}

// Service analyzes wardrobe photographs. Images are passed and
// returned as base64 data URIs, the form the store keeps them in.
type Service interface {
	// Classify identifies the garment in the image.
	Classify(ctx context.Context, imageURI string) (*Classification, error)

	// RemoveBackground returns a copy of the image with the background
	// removed, as a new data URI.
	RemoveBackground(ctx context.Context, imageURI string) (string, error)
}

package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"digistyle/internal/imaging"
)

const classifyPrompt = `Analyze the clothing item in this photo and respond with a single JSON object, no markdown, with exactly these fields:
{
  "category": one of "Tops", "Bottoms", "Outerwear", "Shoes", "Accessories", "Dresses",
  "subCategory": a short refinement such as "T-Shirt" or "Jeans",
  "colors": list of dominant color names,
  "seasons": list drawn from "Summer", "Winter", "Spring", "Autumn", "All Season",
  "tags": short style labels such as "Casual" or "Vintage",
  "styleDescription": one sentence describing the item's style
}`

const removeBackgroundPrompt = `Remove the background from this photo of a clothing item. ` +
	`Return the same garment, unchanged, centered on a plain white background.`

// GeminiConfig configures the Gemini-backed analysis service.
type GeminiConfig struct {
	APIKey string
	// ClassifyModel identifies garments; ImageModel must support image
	// output and is used for background removal.
	ClassifyModel string
	ImageModel    string
	// Timeout bounds each call. The original client had no timeout at
	// all; this is a deliberate hardening.
	Timeout time.Duration
}

// Gemini implements Service using Google's Gemini API.
type Gemini struct {
	logger *slog.Logger
	client *genai.Client
	cfg    GeminiConfig
}

// NewGemini creates a Gemini-backed analysis service.
func NewGemini(ctx context.Context, logger *slog.Logger, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.ClassifyModel == "" || cfg.ImageModel == "" {
		return nil, fmt.Errorf("%w: model names cannot be empty", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating Gemini client: %v", ErrInvalidConfig, err)
	}

	return &Gemini{logger: logger, client: client, cfg: cfg}, nil
}

// Classify identifies the garment in the image. The model is asked for
// a strict JSON object matching Classification; a response outside the
// closed category set is rejected as invalid.
func (g *Gemini) Classify(ctx context.Context, imageURI string) (*Classification, error) {
	data, mime, err := imaging.DecodeDataURI(imageURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.ClassifyModel,
		[]*genai.Content{genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(classifyPrompt),
		}, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		g.logger.Error("classification call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty classification response", ErrInvalidResponse)
	}

	result, err := parseClassification(text)
	if err != nil {
		return nil, err
	}

	g.logger.Info("image classified",
		"category", result.Category,
		"sub_category", result.SubCategory,
		"duration", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// RemoveBackground asks an image-output model for a background-free
// version of the photo and returns the first inline image in the
// response as a new data URI.
func (g *Gemini) RemoveBackground(ctx context.Context, imageURI string) (string, error) {
	data, mime, err := imaging.DecodeDataURI(imageURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackgroundRemovalFailed, err)
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.ImageModel,
		[]*genai.Content{genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(removeBackgroundPrompt),
		}, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	)
	if err != nil {
		g.logger.Error("background removal call failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrBackgroundRemovalFailed, err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				g.logger.Info("background removed",
					"duration", time.Since(start).Round(time.Millisecond))
				return imaging.EncodeDataURI(part.InlineData.Data, part.InlineData.MIMEType), nil
			}
		}
	}

	return "", fmt.Errorf("%w: no image in background removal response", ErrInvalidResponse)
}

func (g *Gemini) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}

// parseClassification decodes and validates the model's JSON reply.
// Models occasionally wrap JSON in a markdown fence despite
// instructions, so fences are stripped before decoding.
func parseClassification(text string) (*Classification, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var result Classification
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", ErrInvalidResponse, err)
	}

	if !result.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidResponse, result.Category)
	}

	// Keep only seasons from the closed set; the rest of the fields
	// are free text and stay as returned.
	seasons := result.Seasons[:0]
	for _, s := range result.Seasons {
		if s.Valid() {
			seasons = append(seasons, s)
		}
	}
	result.Seasons = seasons

	return &result, nil
}

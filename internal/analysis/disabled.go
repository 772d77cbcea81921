package analysis

import (
	"context"
	"fmt"
)

// Disabled is the Service used when no API key is configured. Every
// call fails with ErrInvalidConfig, so the rest of the application
// keeps working without analysis.
type Disabled struct{}

func (Disabled) Classify(context.Context, string) (*Classification, error) {
	return nil, fmt.Errorf("%w: no API key configured", ErrInvalidConfig)
}

func (Disabled) RemoveBackground(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no API key configured", ErrInvalidConfig)
}

package catalog

import (
	"context"

	"github.com/jvmrepo/jvmrepo/src/internal/ui"
)

// FallbackSource tries multiple sources in order, falling back on failure.
// This enables graceful degradation when remote sources are unavailable.
type FallbackSource struct {
	primary  Source
	fallback Source
}

// NewFallbackSource creates a Source that tries the primary source first,
// then falls back to the fallback source if the primary fails.
func NewFallbackSource(primary, fallback Source) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
	}
}

// GetIndex tries the primary source, falling back to the fallback source on any error.
func (s *FallbackSource) GetIndex(ctx context.Context) (Index, error) {
	idx, err := s.primary.GetIndex(ctx)
	if err == nil {
		return idx, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	ui.Debug("Primary catalog source failed: %v, falling back", err)
	return s.fallback.GetIndex(ctx)
}

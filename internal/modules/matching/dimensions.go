package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/politiekmatcher/core/internal/models"
	"golang.org/x/sync/errgroup"
)

// AxisScorer scores one political axis for a piece of text, returning a
// value in [-1, 1].
type AxisScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// AxisScorerFunc adapts a function to the AxisScorer interface.
type AxisScorerFunc func(ctx context.Context, text string) (float64, error)

func (f AxisScorerFunc) Score(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// Registry binds axis names to their scorers. Only the seven known axes can
// be registered.
type Registry struct {
	scorers map[string]AxisScorer
}

func NewRegistry() *Registry {
	return &Registry{scorers: make(map[string]AxisScorer)}
}

func (r *Registry) Register(axis string, scorer AxisScorer) error {
	if !knownAxis(axis) {
		return fmt.Errorf("%w: unknown axis %q", ErrInvalidInput, axis)
	}
	r.scorers[axis] = scorer
	return nil
}

func knownAxis(axis string) bool {
	for _, a := range models.DimensionAxes {
		if a == axis {
			return true
		}
	}
	return false
}

// DimensionScorer projects free text onto the seven political axes. Axes are
// scored concurrently; any axis failure aborts the whole vector, since a
// partially defaulted vector would silently distort cosine alignment.
type DimensionScorer struct {
	registry  *Registry
	textLimit int
}

func NewDimensionScorer(registry *Registry, textLimit int) *DimensionScorer {
	return &DimensionScorer{registry: registry, textLimit: textLimit}
}

// Score returns the clamped seven-axis vector for text. Input longer than the
// configured limit is head-truncated before scoring; empty input is
// ErrInvalidInput.
func (s *DimensionScorer) Score(ctx context.Context, text string) (models.DimensionVector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.DimensionVector{}, fmt.Errorf("%w: empty text", ErrInvalidInput)
	}
	text = TruncateRunes(text, s.textLimit)

	values := make([]float64, len(models.DimensionAxes))
	g, gctx := errgroup.WithContext(ctx)
	for i, axis := range models.DimensionAxes {
		scorer, ok := s.registry.scorers[axis]
		if !ok {
			return models.DimensionVector{}, fmt.Errorf("%w: no scorer registered for axis %q", ErrInferenceUnavailable, axis)
		}
		i, axis, scorer := i, axis, scorer
		g.Go(func() error {
			v, err := scorer.Score(gctx, text)
			if err != nil {
				if errors.Is(err, ErrInferenceUnavailable) {
					return fmt.Errorf("axis %s: %w", axis, err)
				}
				return fmt.Errorf("axis %s: %w: %v", axis, ErrInferenceUnavailable, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DimensionVector{}, err
	}
	return models.VectorFromValues(values), nil
}

// TruncateRunes keeps at most limit runes of text. A limit of zero or less
// means no truncation.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/politiekmatcher/core/internal/config"
	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/modules/matching"
	"github.com/politiekmatcher/core/internal/pkg/aicache"
	"go.uber.org/zap"
)

const (
	classifyMaxTokens    = 120
	dimensionMaxTokens   = 400
	explanationMaxTokens = 800
)

var errNoProvider = errors.New("no enabled AI provider configured")

// Service is the LLM inference layer: stance classification fallback,
// dimension scoring and explanation generation, all routed through the
// configured providers.
type Service struct {
	cfg      config.AIConfig
	matching config.MatchingConfig
	cache    *aicache.Service
	logger   *zap.Logger
}

func NewService(cfg *config.AppConfig, cache *aicache.Service, logger *zap.Logger) *Service {
	return &Service{cfg: cfg.AI, matching: cfg.Matching, cache: cache, logger: logger}
}

// ClassifyText implements the ML fallback of the stance classifier. Results
// are not cached here; the classifier in front of this call owns the cache.
func (s *Service) ClassifyText(ctx context.Context, statement, opinion string) (models.Stance, float64, error) {
	provider := selectProvider(s.cfg, s.cfg.ClassifierModel)
	if provider == nil {
		return "", 0, fmt.Errorf("%w: %v", matching.ErrInferenceUnavailable, errNoProvider)
	}

	raw, err := callWithSystemPrompt(ctx, provider, classifySystemPrompt, buildClassifyPrompt(statement, opinion), classifyMaxTokens)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", matching.ErrInferenceUnavailable, err)
	}

	var result classifyResult
	if err := unmarshalAIJSON(raw, &result); err != nil {
		return "", 0, fmt.Errorf("%w: %v", matching.ErrInferenceUnavailable, err)
	}
	if !result.Label.Valid() {
		return "", 0, fmt.Errorf("%w: model returned label %q", matching.ErrInferenceUnavailable, result.Label)
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result.Label, result.Confidence, nil
}

// ScoreDimensions projects text onto all seven axes in one model call,
// memoized by normalized text. The seven per-axis scorers registered by
// RegisterAxisScorers all funnel into this call; concurrent axis requests
// for the same text collapse onto a single computation.
func (s *Service) ScoreDimensions(ctx context.Context, text string) (models.DimensionVector, error) {
	fingerprint := aicache.Fingerprint("dimensions", aicache.NormalizeText(text))
	raw, err := s.cache.GetOrCompute(ctx, "dimensions", fingerprint, func(ctx context.Context) ([]byte, error) {
		provider := selectProvider(s.cfg, s.cfg.DimensionModel)
		if provider == nil {
			return nil, errNoProvider
		}
		response, err := callWithSystemPrompt(ctx, provider, dimensionSystemPrompt, buildDimensionPrompt(text), dimensionMaxTokens)
		if err != nil {
			return nil, err
		}
		var result dimensionResult
		if err := unmarshalAIJSON(response, &result); err != nil {
			return nil, err
		}
		return json.Marshal(result.vector())
	})
	if err != nil {
		if errors.Is(err, matching.ErrInferenceUnavailable) {
			return models.DimensionVector{}, err
		}
		return models.DimensionVector{}, fmt.Errorf("%w: %v", matching.ErrInferenceUnavailable, err)
	}

	var vector models.DimensionVector
	if err := json.Unmarshal(raw, &vector); err != nil {
		return models.DimensionVector{}, fmt.Errorf("%w: corrupt cached vector: %v", matching.ErrInferenceUnavailable, err)
	}
	return vector.Clamped(), nil
}

// RegisterAxisScorers registers an LLM-backed scorer for every axis.
func (s *Service) RegisterAxisScorers(registry *matching.Registry) error {
	for i, axis := range models.DimensionAxes {
		i := i
		scorer := matching.AxisScorerFunc(func(ctx context.Context, text string) (float64, error) {
			vector, err := s.ScoreDimensions(ctx, text)
			if err != nil {
				return 0, err
			}
			return vector.Values()[i], nil
		})
		if err := registry.Register(axis, scorer); err != nil {
			return err
		}
	}
	return nil
}

package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/pkg/aicache"
	"go.uber.org/zap"
)

// StanceBackend is the ML inference service behind the rule layer.
type StanceBackend interface {
	ClassifyText(ctx context.Context, statement, opinion string) (models.Stance, float64, error)
}

// Classification is the outcome of classifying one opinion.
type Classification struct {
	Label      models.Stance
	Confidence float64
	Source     models.LabelSource
}

type rulePattern struct {
	re     *regexp.Regexp
	stance models.Stance
}

// rulePatterns is scanned in order: disagree before agree before neutral.
// Opinions like "ik ben het niet eens" contain
// both a negation and an agreement token, and must resolve to disagree.
var rulePatterns = []rulePattern{
	{regexp.MustCompile(`\b(ik\s+ben\s+het\s+niet\s+eens|niet\s+eens)\b`), models.StanceDisagree},
	{regexp.MustCompile(`\b(oneens|on\s*eens)\b`), models.StanceDisagree},
	{regexp.MustCompile(`\b(helemaal\s+niet|absoluut\s+niet)\b`), models.StanceDisagree},
	{regexp.MustCompile(`\bnee,?\s*(dit|dat)?\b`), models.StanceDisagree},
	{regexp.MustCompile(`\btegen\s+deze?\s+stelling\b`), models.StanceDisagree},

	{regexp.MustCompile(`\b(ik\s+ben\s+het\s+(helemaal\s+)?eens|eens)\b`), models.StanceAgree},
	{regexp.MustCompile(`\bja,?\s*(dit|dat)?\b`), models.StanceAgree},
	{regexp.MustCompile(`\b(helemaal\s+mee\s+eens|volledig\s+eens)\b`), models.StanceAgree},
	{regexp.MustCompile(`\bvoor\s+deze?\s+stelling\b`), models.StanceAgree},

	{regexp.MustCompile(`\b(geen\s+mening|weet\s+(ik\s+)?niet)\b`), models.StanceNeutral},
	{regexp.MustCompile(`\bneutraal\b`), models.StanceNeutral},
	{regexp.MustCompile(`\bik\s+twijfel\b`), models.StanceNeutral},
}

// Classifier labels free-text opinions. Deterministic language rules run
// first; ambiguous text falls through to the ML backend, memoized in the AI
// result cache.
type Classifier struct {
	backend StanceBackend
	cache   *aicache.Service
	logger  *zap.Logger
}

func NewClassifier(backend StanceBackend, cache *aicache.Service, logger *zap.Logger) *Classifier {
	return &Classifier{backend: backend, cache: cache, logger: logger}
}

type cachedClassification struct {
	Label      models.Stance `json:"label"`
	Confidence float64       `json:"confidence"`
}

// Classify labels an opinion on a statement. An empty opinion is
// ErrInvalidInput. Backend failures never surface: the classifier degrades
// to neutral with confidence 0 so a transient AI outage cannot block the
// pipeline; callers should flag such results for later reclassification.
func (c *Classifier) Classify(ctx context.Context, statementID, statementText, opinion string) (Classification, error) {
	if strings.TrimSpace(opinion) == "" {
		return Classification{}, fmt.Errorf("%w: empty opinion", ErrInvalidInput)
	}

	if label, ok := matchRules(opinion); ok {
		return Classification{Label: label, Confidence: 1.0, Source: models.LabelSourceRule}, nil
	}

	fp := aicache.Fingerprint("classify", statementID, aicache.NormalizeText(opinion))
	raw, err := c.cache.GetOrCompute(ctx, "classify", fp, func(ctx context.Context) ([]byte, error) {
		label, confidence, err := c.backend.ClassifyText(ctx, statementText, opinion)
		if err != nil {
			return nil, err
		}
		return json.Marshal(cachedClassification{Label: label, Confidence: confidence})
	})
	if err != nil {
		c.logger.Warn("stance inference unavailable, defaulting to neutral",
			zap.String("statement_id", statementID),
			zap.Error(err))
		return Classification{Label: models.StanceNeutral, Confidence: 0, Source: models.LabelSourceModel}, nil
	}

	var cached cachedClassification
	if err := json.Unmarshal(raw, &cached); err != nil {
		return Classification{Label: models.StanceNeutral, Confidence: 0, Source: models.LabelSourceModel}, nil
	}
	if !cached.Label.Valid() {
		cached.Label = models.StanceNeutral
		cached.Confidence = 0
	}
	return Classification{Label: cached.Label, Confidence: clamp01(cached.Confidence), Source: models.LabelSourceModel}, nil
}

func matchRules(opinion string) (models.Stance, bool) {
	lower := strings.ToLower(strings.TrimSpace(opinion))
	for _, p := range rulePatterns {
		if p.re.MatchString(lower) {
			return p.stance, true
		}
	}
	return "", false
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

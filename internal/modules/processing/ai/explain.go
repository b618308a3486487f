package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/politiekmatcher/core/internal/pkg/aicache"
	"go.uber.org/zap"
)

const explanationDisclaimer = "Deze uitleg is automatisch gegenereerd en kan onnauwkeurigheden bevatten."

// PartyExplanation produces a readable Dutch explanation of one party match.
// Generated text is cached by the match inputs, so the same set of scored
// statements never costs a second model call. When generation is disabled or
// the model fails, a deterministic template takes over; explanation delivery
// never fails outright.
func (s *Service) PartyExplanation(ctx context.Context, input ExplanationInput) string {
	if !s.cfg.EnableExplanation {
		return s.finishExplanation(templateExplanation(input))
	}

	raw, err := s.cache.GetOrCompute(ctx, "explanation", explanationFingerprint(input), func(ctx context.Context) ([]byte, error) {
		provider := selectProvider(s.cfg, s.cfg.ExplanationModel)
		if provider == nil {
			return nil, errNoProvider
		}
		text, err := callWithSystemPrompt(ctx, provider, explanationSystemPrompt, buildExplanationPrompt(input), explanationMaxTokens)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("empty explanation from AI")
		}
		return []byte(text), nil
	})
	if err != nil {
		s.logger.Warn("party explanation generation failed, using template",
			zap.String("party", input.PartyName),
			zap.Error(err))
		return s.finishExplanation(templateExplanation(input))
	}
	return s.finishExplanation(string(raw))
}

func (s *Service) finishExplanation(text string) string {
	if limit := s.matching.ExplanationMaxLength; limit > 0 {
		runes := []rune(text)
		if len(runes) > limit {
			text = strings.TrimSpace(string(runes[:limit])) + "..."
		}
	}
	return text + "\n\n" + explanationDisclaimer
}

// explanationFingerprint keys generated explanations on everything visible in
// the text: party, percentage and the per-statement outcomes.
func explanationFingerprint(input ExplanationInput) string {
	parts := []string{
		"explanation",
		input.PartyName,
		fmt.Sprintf("%.2f", input.MatchPercentage),
	}
	for _, st := range input.Statements {
		parts = append(parts, fmt.Sprintf("%s|%s|%s|%.2f",
			aicache.NormalizeText(st.Statement), st.UserStance, st.PartyStance, st.FinalScore))
	}
	return aicache.Fingerprint(parts...)
}

// templateExplanation is the deterministic fallback: it names the strongest
// agreements and disagreements without any model involvement.
func templateExplanation(input ExplanationInput) string {
	statements := make([]ExplanationStatement, len(input.Statements))
	copy(statements, input.Statements)
	sort.SliceStable(statements, func(i, j int) bool {
		return statements[i].FinalScore > statements[j].FinalScore
	})

	var agreements, disagreements []string
	for _, st := range statements {
		switch {
		case st.FinalScore > 60 && len(agreements) < 3:
			agreements = append(agreements, st.Statement)
		case st.FinalScore < 40 && len(disagreements) < 3:
			disagreements = append(disagreements, st.Statement)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Je hebt een match van %.0f%% met %s, gebaseerd op %d stellingen.",
		input.MatchPercentage, input.PartyName, len(input.Statements))
	if len(agreements) > 0 {
		fmt.Fprintf(&b, "\n\nJullie denken hetzelfde over onder andere: %s.", strings.Join(agreements, "; "))
	}
	if len(disagreements) > 0 {
		fmt.Fprintf(&b, "\n\nJullie verschillen van mening over onder andere: %s.", strings.Join(disagreements, "; "))
	}
	return b.String()
}

package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/politiekmatcher/core/internal/config"
	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/pkg/aicache"
	"go.uber.org/zap"
)

type nullStore struct{}

func (nullStore) Load(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nullStore) Save(context.Context, string, string, []byte) error { return nil }
func (nullStore) Delete(context.Context, string) error               { return nil }

func testService(cfg config.AIConfig, matching config.MatchingConfig) *Service {
	app := &config.AppConfig{AI: cfg, Matching: matching}
	cache := aicache.NewService(nullStore{}, zap.NewNop(), time.Second)
	return NewService(app, cache, zap.NewNop())
}

func sampleInput() ExplanationInput {
	return ExplanationInput{
		PartyName:       "Partij A",
		MatchPercentage: 72,
		Statements: []ExplanationStatement{
			{Statement: "Er moet meer geld naar onderwijs", UserStance: models.StanceAgree, PartyStance: models.PartyAgree, FinalScore: 95},
			{Statement: "De zorgpremie moet omlaag", UserStance: models.StanceAgree, PartyStance: models.PartyNeutral, FinalScore: 62},
			{Statement: "Kernenergie moet worden uitgebreid", UserStance: models.StanceDisagree, PartyStance: models.PartyStronglyAgree, FinalScore: 15},
		},
	}
}

func TestPartyExplanationDisabledUsesTemplate(t *testing.T) {
	s := testService(config.AIConfig{EnableExplanation: false}, config.MatchingConfig{})

	got := s.PartyExplanation(context.Background(), sampleInput())
	if !strings.Contains(got, "72%") || !strings.Contains(got, "Partij A") {
		t.Fatalf("template missing match facts:\n%s", got)
	}
	if !strings.Contains(got, "Er moet meer geld naar onderwijs") {
		t.Fatalf("template missing top agreement:\n%s", got)
	}
	if !strings.Contains(got, "Kernenergie moet worden uitgebreid") {
		t.Fatalf("template missing top disagreement:\n%s", got)
	}
	if !strings.HasSuffix(got, explanationDisclaimer) {
		t.Fatalf("explanation must end with the disclaimer:\n%s", got)
	}
}

func TestPartyExplanationProviderFailureFallsBack(t *testing.T) {
	// Enabled but no provider configured: generation fails, template wins.
	s := testService(config.AIConfig{EnableExplanation: true}, config.MatchingConfig{})

	got := s.PartyExplanation(context.Background(), sampleInput())
	if !strings.Contains(got, "Partij A") {
		t.Fatalf("fallback did not render:\n%s", got)
	}
	if !strings.HasSuffix(got, explanationDisclaimer) {
		t.Fatalf("fallback must still carry the disclaimer:\n%s", got)
	}
}

func TestFinishExplanationCapsLength(t *testing.T) {
	s := testService(config.AIConfig{}, config.MatchingConfig{ExplanationMaxLength: 10})

	got := s.finishExplanation(strings.Repeat("a", 50))
	body := strings.TrimSuffix(got, "\n\n"+explanationDisclaimer)
	if body != strings.Repeat("a", 10)+"..." {
		t.Fatalf("body = %q, want 10 runes plus ellipsis", body)
	}
}

func TestExplanationFingerprintSensitivity(t *testing.T) {
	a := explanationFingerprint(sampleInput())

	same := explanationFingerprint(sampleInput())
	if a != same {
		t.Fatal("identical inputs produced different fingerprints")
	}

	changed := sampleInput()
	changed.Statements[0].FinalScore = 50
	if explanationFingerprint(changed) == a {
		t.Fatal("changed score must change the fingerprint")
	}
}

package matching

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/pkg/aicache"
	"go.uber.org/zap"
)

type stubBackend struct {
	label models.Stance
	conf  float64
	err   error
	calls int32
}

func (s *stubBackend) ClassifyText(_ context.Context, _, _ string) (models.Stance, float64, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.label, s.conf, s.err
}

type nullStore struct{}

func (nullStore) Load(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nullStore) Save(context.Context, string, string, []byte) error { return nil }
func (nullStore) Delete(context.Context, string) error               { return nil }

func newTestClassifier(backend StanceBackend) *Classifier {
	cache := aicache.NewService(nullStore{}, zap.NewNop(), time.Second)
	return NewClassifier(backend, cache, zap.NewNop())
}

func TestClassifyRules(t *testing.T) {
	cases := []struct {
		opinion string
		want    models.Stance
	}{
		{"Ik ben het eens met deze stelling", models.StanceAgree},
		{"helemaal mee eens", models.StanceAgree},
		{"Ja, dit moet gebeuren", models.StanceAgree},
		{"ik ben voor deze stelling", models.StanceAgree},

		{"Ik ben het niet eens met dit plan", models.StanceDisagree},
		{"helemaal oneens", models.StanceDisagree},
		{"Nee, dat lijkt me onverstandig", models.StanceDisagree},
		{"absoluut niet", models.StanceDisagree},
		{"ik ben tegen deze stelling", models.StanceDisagree},

		{"geen mening hierover", models.StanceNeutral},
		{"weet ik niet", models.StanceNeutral},
		{"ik sta hier neutraal in", models.StanceNeutral},
	}

	backend := &stubBackend{err: errors.New("should not be called")}
	c := newTestClassifier(backend)
	for _, tc := range cases {
		got, err := c.Classify(context.Background(), "stmt-1", "statement", tc.opinion)
		if err != nil {
			t.Fatalf("Classify(%q): %v", tc.opinion, err)
		}
		if got.Label != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.opinion, got.Label, tc.want)
		}
		if got.Confidence != 1.0 {
			t.Errorf("Classify(%q) confidence = %v, want 1.0", tc.opinion, got.Confidence)
		}
		if got.Source != models.LabelSourceRule {
			t.Errorf("Classify(%q) source = %s, want rule", tc.opinion, got.Source)
		}
	}
	if n := atomic.LoadInt32(&backend.calls); n != 0 {
		t.Fatalf("backend invoked %d times for rule-matched opinions", n)
	}
}

func TestClassifyNegationBeatsAgreement(t *testing.T) {
	// "niet eens" contains the agree token "eens"; negation rules run first.
	c := newTestClassifier(&stubBackend{})
	got, err := c.Classify(context.Background(), "stmt-1", "statement", "ik ben het niet eens")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Label != models.StanceDisagree {
		t.Fatalf("label = %s, want disagree", got.Label)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newTestClassifier(&stubBackend{})
	first, err := c.Classify(context.Background(), "stmt-1", "statement", "Helemaal mee eens!")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := c.Classify(context.Background(), "stmt-1", "statement", "Helemaal mee eens!")
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		if got != first {
			t.Fatalf("run %d produced %+v, first run %+v", i, got, first)
		}
	}
}

func TestClassifyEmptyOpinion(t *testing.T) {
	c := newTestClassifier(&stubBackend{})
	for _, opinion := range []string{"", "   ", "\n\t"} {
		if _, err := c.Classify(context.Background(), "stmt-1", "statement", opinion); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Classify(%q) error = %v, want ErrInvalidInput", opinion, err)
		}
	}
}

func TestClassifyModelFallback(t *testing.T) {
	backend := &stubBackend{label: models.StanceAgree, conf: 0.83}
	c := newTestClassifier(backend)

	got, err := c.Classify(context.Background(), "stmt-1", "statement", "de nuance ligt hier ergens in het midden van het debat")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got.Label != models.StanceAgree || got.Confidence != 0.83 {
		t.Fatalf("got %+v, want agree/0.83", got)
	}
	if got.Source != models.LabelSourceModel {
		t.Fatalf("source = %s, want model", got.Source)
	}
	if n := atomic.LoadInt32(&backend.calls); n != 1 {
		t.Fatalf("backend invoked %d times, want 1", n)
	}
}

func TestClassifyBackendFailureDegradesToNeutral(t *testing.T) {
	backend := &stubBackend{err: ErrInferenceUnavailable}
	c := newTestClassifier(backend)

	got, err := c.Classify(context.Background(), "stmt-1", "statement", "een lange genuanceerde beschouwing zonder signaalwoorden")
	if err != nil {
		t.Fatalf("Classify must not surface backend errors, got %v", err)
	}
	if got.Label != models.StanceNeutral || got.Confidence != 0 {
		t.Fatalf("got %+v, want neutral/0", got)
	}
	if got.Source != models.LabelSourceModel {
		t.Fatalf("source = %s, want model", got.Source)
	}
}

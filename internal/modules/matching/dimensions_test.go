package matching

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/politiekmatcher/core/internal/models"
)

func fullRegistry(t *testing.T, scorer AxisScorer) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, axis := range models.DimensionAxes {
		if err := r.Register(axis, scorer); err != nil {
			t.Fatalf("Register(%s): %v", axis, err)
		}
	}
	return r
}

func TestRegistryRejectsUnknownAxis(t *testing.T) {
	r := NewRegistry()
	err := r.Register("charisma", AxisScorerFunc(func(context.Context, string) (float64, error) {
		return 0, nil
	}))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestDimensionScorerClampsComponents(t *testing.T) {
	r := fullRegistry(t, AxisScorerFunc(func(context.Context, string) (float64, error) {
		return 3.7, nil
	}))
	s := NewDimensionScorer(r, 0)

	v, err := s.Score(context.Background(), "meer marktwerking in de zorg")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i, got := range v.Values() {
		if got != 1 {
			t.Errorf("axis %s = %v, want clamped to 1", models.DimensionAxes[i], got)
		}
	}
}

func TestDimensionScorerTruncatesInput(t *testing.T) {
	var seen atomic.Value
	r := fullRegistry(t, AxisScorerFunc(func(_ context.Context, text string) (float64, error) {
		seen.Store(text)
		return 0, nil
	}))
	s := NewDimensionScorer(r, 16)

	long := strings.Repeat("é", 40)
	if _, err := s.Score(context.Background(), long); err != nil {
		t.Fatalf("Score: %v", err)
	}
	got := seen.Load().(string)
	if n := len([]rune(got)); n != 16 {
		t.Fatalf("scorer saw %d runes, want 16", n)
	}
	if !strings.HasPrefix(long, got) {
		t.Fatal("truncation must keep the head of the input")
	}
}

func TestDimensionScorerPropagatesAxisFailure(t *testing.T) {
	boom := errors.New("model timeout")
	var calls int32
	r := NewRegistry()
	for i, axis := range models.DimensionAxes {
		i := i
		if err := r.Register(axis, AxisScorerFunc(func(context.Context, string) (float64, error) {
			atomic.AddInt32(&calls, 1)
			if i == 3 {
				return 0, boom
			}
			return 0.5, nil
		})); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	s := NewDimensionScorer(r, 0)

	_, err := s.Score(context.Background(), "minder regels voor ondernemers")
	if !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("error = %v, want ErrInferenceUnavailable", err)
	}
}

func TestDimensionScorerEmptyInput(t *testing.T) {
	s := NewDimensionScorer(fullRegistry(t, AxisScorerFunc(func(context.Context, string) (float64, error) {
		return 0, nil
	})), 0)
	if _, err := s.Score(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestDimensionScorerMissingAxis(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("economic", AxisScorerFunc(func(context.Context, string) (float64, error) {
		return 0, nil
	})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s := NewDimensionScorer(r, 0)
	if _, err := s.Score(context.Background(), "tekst"); !errors.Is(err, ErrInferenceUnavailable) {
		t.Fatalf("error = %v, want ErrInferenceUnavailable", err)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("abcdef", 0); got != "abcdef" {
		t.Errorf("limit 0 must not truncate, got %q", got)
	}
	if got := TruncateRunes("abcdef", 3); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
	if got := TruncateRunes("héllo", 2); got != "hé" {
		t.Errorf("got %q, want %q", got, "hé")
	}
}

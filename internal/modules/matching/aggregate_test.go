package matching

import (
	"errors"
	"math"
	"testing"

	"github.com/politiekmatcher/core/internal/models"
)

func TestBaseScoreTable(t *testing.T) {
	cases := []struct {
		user  models.Stance
		party models.PartyStance
		want  float64
	}{
		{models.StanceAgree, models.PartyAgree, 100},
		{models.StanceAgree, models.PartyStronglyAgree, 100},
		{models.StanceDisagree, models.PartyDisagree, 100},
		{models.StanceDisagree, models.PartyStronglyDisagree, 100},

		{models.StanceNeutral, models.PartyAgree, 60},
		{models.StanceNeutral, models.PartyDisagree, 60},
		{models.StanceNeutral, models.PartyNeutral, 60},
		{models.StanceAgree, models.PartyNeutral, 60},
		{models.StanceDisagree, models.PartyNeutral, 60},

		{models.StanceAgree, models.PartyDisagree, 20},
		{models.StanceAgree, models.PartyStronglyDisagree, 20},
		{models.StanceDisagree, models.PartyAgree, 20},
		{models.StanceDisagree, models.PartyStronglyAgree, 20},
	}
	for _, c := range cases {
		if got := BaseScore(c.user, c.party); got != c.want {
			t.Errorf("BaseScore(%s, %s) = %v, want %v", c.user, c.party, got, c.want)
		}
	}
}

func TestFinalScoreClamping(t *testing.T) {
	if got := FinalScore(100, 20); got != 100 {
		t.Errorf("FinalScore(100, 20) = %v, want 100", got)
	}
	if got := FinalScore(20, -20); got != 0 {
		t.Errorf("FinalScore(20, -20) = %v, want 0", got)
	}
	if got := FinalScore(60, 5.5); got != 65.5 {
		t.Errorf("FinalScore(60, 5.5) = %v, want 65.5", got)
	}
}

func TestWeightedScore(t *testing.T) {
	got, err := WeightedScore(100, 5)
	if err != nil || got != 100 {
		t.Fatalf("WeightedScore(100, 5) = %v, %v", got, err)
	}
	got, err = WeightedScore(100, 1)
	if err != nil || got != 20 {
		t.Fatalf("WeightedScore(100, 1) = %v, %v", got, err)
	}

	for _, rating := range []int{0, 6, -1} {
		if _, err := WeightedScore(50, rating); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("WeightedScore(50, %d) error = %v, want ErrInvalidInput", rating, err)
		}
	}
}

func TestScoreStatementWeighting(t *testing.T) {
	zero := models.DimensionVector{}
	score, err := ScoreStatement(models.StanceAgree, models.PartyAgree, zero, zero, 1, 5)
	if err != nil {
		t.Fatalf("ScoreStatement: %v", err)
	}
	if score.Base != 100 || score.Modifier != 0 || score.Final != 100 {
		t.Fatalf("score = %+v, want base/final 100 with zero modifier", score)
	}
	if score.ConfidenceWeighted != 20 {
		t.Errorf("confidence weighted = %v, want 20", score.ConfidenceWeighted)
	}
	if score.ImportanceWeighted != 100 {
		t.Errorf("importance weighted = %v, want 100", score.ImportanceWeighted)
	}

	if _, err := ScoreStatement(models.StanceAgree, models.PartyAgree, zero, zero, 0, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("rating 0 error = %v, want ErrInvalidInput", err)
	}
}

func TestAggregateParty(t *testing.T) {
	matches := []models.StatementMatchModel{
		{FinalScore: 100, ConfidenceWeighted: 80, ImportanceWeighted: 100},
		{FinalScore: 60, ConfidenceWeighted: 36, ImportanceWeighted: 60},
		{FinalScore: 20, ConfidenceWeighted: 4, ImportanceWeighted: 20},
	}
	agg, err := AggregateParty(matches)
	if err != nil {
		t.Fatalf("AggregateParty: %v", err)
	}
	if agg.MatchPercentage != 60 {
		t.Errorf("match percentage = %v, want 60", agg.MatchPercentage)
	}
	if agg.ConfidenceWeighted != 40 {
		t.Errorf("confidence weighted mean = %v, want 40", agg.ConfidenceWeighted)
	}
	if agg.TotalStatements != 3 {
		t.Errorf("total = %d, want 3", agg.TotalStatements)
	}
	// 60 is not strictly above the threshold
	if agg.MatchingStatements != 1 {
		t.Errorf("matching = %d, want 1", agg.MatchingStatements)
	}
}

func TestAggregatePartyEmpty(t *testing.T) {
	if _, err := AggregateParty(nil); !errors.Is(err, ErrAggregationUndefined) {
		t.Fatalf("error = %v, want ErrAggregationUndefined", err)
	}
}

func TestDimensionModifierBounds(t *testing.T) {
	identical := models.VectorFromValues([]float64{1, -1, 0.5, 0, 0, 0.2, -0.3})
	if got := DimensionModifier(identical, identical); math.Abs(got-ModifierScale) > 1e-9 {
		t.Errorf("self-similarity modifier = %v, want %v", got, ModifierScale)
	}

	opposite := models.VectorFromValues([]float64{-1, 1, -0.5, 0, 0, -0.2, 0.3})
	if got := DimensionModifier(identical, opposite); math.Abs(got+ModifierScale) > 1e-9 {
		t.Errorf("opposite modifier = %v, want %v", got, -ModifierScale)
	}

	zero := models.DimensionVector{}
	if got := DimensionModifier(identical, zero); got != 0 {
		t.Errorf("zero-vector modifier = %v, want 0", got)
	}
	if got := DimensionModifier(zero, zero); got != 0 {
		t.Errorf("both-zero modifier = %v, want 0", got)
	}
}

func TestDimensionModifierSymmetry(t *testing.T) {
	a := models.VectorFromValues([]float64{0.8, -0.4, 0.1, 0.9, -0.6, 0.3, 0})
	b := models.VectorFromValues([]float64{-0.2, 0.7, 0.5, -0.1, 0.4, -0.9, 0.6})
	if DimensionModifier(a, b) != DimensionModifier(b, a) {
		t.Fatal("modifier is not symmetric")
	}

	self := DimensionModifier(a, a)
	other := DimensionModifier(a, b)
	if self < other {
		t.Fatalf("self modifier %v below cross modifier %v", self, other)
	}
}

package matching

import (
	"fmt"

	"github.com/politiekmatcher/core/internal/models"
)

// Base agreement scores for the normalized stance pairs.
const (
	baseEqual    = 100.0
	baseNeutral  = 60.0
	baseOpposite = 20.0
	baseOther    = 50.0
)

// MatchingThreshold is the final score above which a statement counts as a
// match in party aggregates.
const MatchingThreshold = 60.0

// BaseScore maps a user stance and a party stance onto the base agreement
// score. The party stance is normalized to the three-valued scale first, so
// strongly_agree scores identically to agree.
func BaseScore(user models.Stance, party models.PartyStance) float64 {
	p := party.Normalize()
	switch {
	case user == p && user != models.StanceNeutral:
		return baseEqual
	case user == models.StanceNeutral || p == models.StanceNeutral:
		return baseNeutral
	case (user == models.StanceAgree && p == models.StanceDisagree) ||
		(user == models.StanceDisagree && p == models.StanceAgree):
		return baseOpposite
	}
	return baseOther
}

// FinalScore applies the dimension modifier to a base score and clamps the
// result to [0, 100].
func FinalScore(base, modifier float64) float64 {
	f := base + modifier
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}

// WeightedScore scales a final score by a 1-5 rating. Ratings outside that
// range are ErrInvalidInput.
func WeightedScore(final float64, rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("%w: rating %d outside 1-5", ErrInvalidInput, rating)
	}
	return final * float64(rating) / 5.0, nil
}

// StatementScore holds every per-statement number the pipeline persists.
type StatementScore struct {
	Base               float64
	Modifier           float64
	Final              float64
	ConfidenceWeighted float64
	ImportanceWeighted float64
}

// ScoreStatement computes the full per-statement score for one user response
// against one party position.
func ScoreStatement(user models.Stance, party models.PartyStance, userDims, partyDims models.DimensionVector, confidenceRating, importanceRating int) (StatementScore, error) {
	base := BaseScore(user, party)
	modifier := DimensionModifier(userDims, partyDims)
	final := FinalScore(base, modifier)

	confWeighted, err := WeightedScore(final, confidenceRating)
	if err != nil {
		return StatementScore{}, fmt.Errorf("confidence rating: %w", err)
	}
	impWeighted, err := WeightedScore(final, importanceRating)
	if err != nil {
		return StatementScore{}, fmt.Errorf("importance rating: %w", err)
	}

	return StatementScore{
		Base:               base,
		Modifier:           modifier,
		Final:              final,
		ConfidenceWeighted: confWeighted,
		ImportanceWeighted: impWeighted,
	}, nil
}

// PartyAggregate is the rollup of all statement matches for one party.
type PartyAggregate struct {
	MatchPercentage    float64
	ConfidenceWeighted float64
	ImportanceWeighted float64
	TotalStatements    int
	MatchingStatements int
}

// AggregateParty reduces statement matches to a single party result using
// arithmetic means. Zero rows is ErrAggregationUndefined: no responses means
// no score, never a default one.
func AggregateParty(matches []models.StatementMatchModel) (PartyAggregate, error) {
	if len(matches) == 0 {
		return PartyAggregate{}, ErrAggregationUndefined
	}

	var sumFinal, sumConf, sumImp float64
	matching := 0
	for _, m := range matches {
		sumFinal += m.FinalScore
		sumConf += m.ConfidenceWeighted
		sumImp += m.ImportanceWeighted
		if m.FinalScore > MatchingThreshold {
			matching++
		}
	}
	n := float64(len(matches))
	return PartyAggregate{
		MatchPercentage:    sumFinal / n,
		ConfidenceWeighted: sumConf / n,
		ImportanceWeighted: sumImp / n,
		TotalStatements:    len(matches),
		MatchingStatements: matching,
	}, nil
}

package ai

import "github.com/politiekmatcher/core/internal/models"

// ExplanationInput is everything the explanation generator needs about one
// party match. Statements carry the per-statement outcomes the text should
// reference.
type ExplanationInput struct {
	PartyName       string
	MatchPercentage float64
	Statements      []ExplanationStatement
}

type ExplanationStatement struct {
	Statement   string
	UserStance  models.Stance
	PartyStance models.PartyStance
	FinalScore  float64
}

type classifyResult struct {
	Label      models.Stance `json:"label"`
	Confidence float64       `json:"confidence"`
}

type dimensionResult struct {
	Economic         float64 `json:"economic"`
	Social           float64 `json:"social"`
	Environmental    float64 `json:"environmental"`
	Immigration      float64 `json:"immigration"`
	Europe           float64 `json:"europe"`
	Authority        float64 `json:"authority"`
	Institutionality float64 `json:"institutionality"`
}

func (d dimensionResult) vector() models.DimensionVector {
	return models.VectorFromValues([]float64{
		d.Economic, d.Social, d.Environmental, d.Immigration,
		d.Europe, d.Authority, d.Institutionality,
	})
}

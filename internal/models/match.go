package models

import "time"

// StatementMatchModel is the derived per-(response, party) match. Rows are
// recomputed in place whenever the response or the party position changes.
type StatementMatchModel struct {
	Base
	ProfileID   string `json:"profile_id"   gorm:"index:idx_match_profile_statement_party,unique;not null"`
	StatementID string `json:"statement_id" gorm:"index:idx_match_profile_statement_party,unique;not null"`
	PartyID     string `json:"party_id"     gorm:"index:idx_match_profile_statement_party,unique;not null"`
	ResponseID  string `json:"response_id"  gorm:"index;not null"`

	PartyStance      PartyStance `json:"party_stance"      gorm:"type:varchar(20)"`
	PartyExplanation string      `json:"party_explanation" gorm:"type:text"`

	BaseScore          float64 `json:"base_score"`
	DimensionModifier  float64 `json:"dimension_modifier"`
	FinalScore         float64 `json:"final_score"          gorm:"index"`
	ConfidenceWeighted float64 `json:"confidence_weighted"`
	ImportanceWeighted float64 `json:"importance_weighted"`

	CalculatedAt time.Time `json:"calculated_at"`
}

func (StatementMatchModel) TableName() string { return "statement_matches" }

// PartyMatchModel aggregates a profile's statement matches per party.
// Explanation caches the generated narrative and is cleared on recompute.
type PartyMatchModel struct {
	Base
	ProfileID string `json:"profile_id" gorm:"index:idx_party_match_profile_party,unique;not null"`
	PartyID   string `json:"party_id"   gorm:"index:idx_party_match_profile_party,unique;not null"`

	MatchPercentage    float64 `json:"match_percentage"`
	ConfidenceWeighted float64 `json:"confidence_weighted"`
	ImportanceWeighted float64 `json:"importance_weighted"`
	TotalStatements    int     `json:"total_statements"`
	MatchingStatements int     `json:"matching_statements"`

	Explanation *string `json:"explanation,omitempty" gorm:"type:text"`

	CalculatedAt time.Time `json:"calculated_at"`

	Party *PartyModel `json:"party,omitempty" gorm:"foreignKey:PartyID"`
}

func (PartyMatchModel) TableName() string { return "party_matches" }

package profiles

import (
	"time"

	"github.com/politiekmatcher/core/internal/models"
)

type createProfileDTO struct {
	SessionKey string `json:"sessionKey"`
}

type submitResponseDTO struct {
	StatementID      string `json:"statementId"      binding:"required"`
	Opinion          string `json:"opinion"          binding:"required"`
	ConfidenceRating int    `json:"confidenceRating" binding:"required"`
	ImportanceRating int    `json:"importanceRating" binding:"required"`
	Async            bool   `json:"async"`
}

type correctLabelDTO struct {
	Label models.Stance `json:"label" binding:"required"`
}

type profileResponse struct {
	ID          string     `json:"id"`
	IsCompleted bool       `json:"isCompleted"`
	LastActive  *time.Time `json:"lastActive,omitempty"`
	Responses   int64      `json:"responses"`
}

type responseView struct {
	ID               string             `json:"id"`
	StatementID      string             `json:"statementId"`
	Statement        string             `json:"statement,omitempty"`
	Opinion          string             `json:"opinion"`
	Label            models.Stance      `json:"label"`
	LabelConfidence  float64            `json:"labelConfidence"`
	LabelSource      models.LabelSource `json:"labelSource"`
	ClassifiedLabel  models.Stance      `json:"classifiedLabel,omitempty"`
	ConfidenceRating int                `json:"confidenceRating"`
	ImportanceRating int                `json:"importanceRating"`
}

type partyMatchView struct {
	PartyID            string    `json:"partyId"`
	PartyName          string    `json:"partyName,omitempty"`
	PartyAbbreviation  string    `json:"partyAbbreviation,omitempty"`
	MatchPercentage    float64   `json:"matchPercentage"`
	ConfidenceWeighted float64   `json:"confidenceWeighted"`
	ImportanceWeighted float64   `json:"importanceWeighted"`
	TotalStatements    int       `json:"totalStatements"`
	MatchingStatements int       `json:"matchingStatements"`
	CalculatedAt       time.Time `json:"calculatedAt"`
}

func toResponseView(r *models.UserResponseModel) responseView {
	out := responseView{
		ID:               r.ID,
		StatementID:      r.StatementID,
		Opinion:          r.Opinion,
		Label:            r.Label,
		LabelConfidence:  r.LabelConfidence,
		LabelSource:      r.LabelSource,
		ClassifiedLabel:  r.ClassifiedLabel,
		ConfidenceRating: r.ConfidenceRating,
		ImportanceRating: r.ImportanceRating,
	}
	if r.Statement != nil {
		out.Statement = r.Statement.Text
	}
	return out
}

func toPartyMatchView(m *models.PartyMatchModel) partyMatchView {
	out := partyMatchView{
		PartyID:            m.PartyID,
		MatchPercentage:    m.MatchPercentage,
		ConfidenceWeighted: m.ConfidenceWeighted,
		ImportanceWeighted: m.ImportanceWeighted,
		TotalStatements:    m.TotalStatements,
		MatchingStatements: m.MatchingStatements,
		CalculatedAt:       m.CalculatedAt,
	}
	if m.Party != nil {
		out.PartyName = m.Party.Name
		out.PartyAbbreviation = m.Party.Abbreviation
	}
	return out
}

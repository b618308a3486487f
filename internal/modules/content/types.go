package content

import "github.com/politiekmatcher/core/internal/models"

type statementResponse struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Explanation string `json:"explanation,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

type partyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logoUrl,omitempty"`
	Website      string `json:"website,omitempty"`
}

type positionResponse struct {
	ID          string             `json:"id"`
	StatementID string             `json:"statementId"`
	Party       *partyResponse     `json:"party,omitempty"`
	Stance      models.PartyStance `json:"stance"`
	Explanation string             `json:"explanation,omitempty"`
}

func toStatementResponse(s *models.StatementModel) statementResponse {
	return statementResponse{
		ID:          s.ID,
		Text:        s.Text,
		Explanation: s.Explanation,
		Theme:       s.Theme,
		Topic:       s.Topic,
	}
}

func toPartyResponse(p *models.PartyModel) partyResponse {
	return partyResponse{
		ID:           p.ID,
		Name:         p.Name,
		Abbreviation: p.Abbreviation,
		LogoURL:      p.LogoURL,
		Website:      p.Website,
	}
}

func toPositionResponse(p *models.PartyPositionModel) positionResponse {
	out := positionResponse{
		ID:          p.ID,
		StatementID: p.StatementID,
		Stance:      p.Stance,
		Explanation: p.Explanation,
	}
	if p.Party != nil {
		party := toPartyResponse(p.Party)
		out.Party = &party
	}
	return out
}

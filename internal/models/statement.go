package models

// StatementModel is an immutable political claim users respond to.
// Statements are created during content ingestion and read-only here.
type StatementModel struct {
	Base
	Text        string `json:"text"        gorm:"type:text;not null"`
	Explanation string `json:"explanation" gorm:"type:text"`
	Theme       string `json:"theme"       gorm:"index"`
	Topic       string `json:"topic"       gorm:"index"`
}

func (StatementModel) TableName() string { return "statements" }

// PartyModel is a political party whose positions are matched against.
type PartyModel struct {
	Base
	Name         string `json:"name"         gorm:"uniqueIndex;not null"`
	Abbreviation string `json:"abbreviation" gorm:"uniqueIndex;not null"`
	LogoURL      string `json:"logo_url"`
	Website      string `json:"website"`
}

func (PartyModel) TableName() string { return "parties" }

// PartyPositionModel is a party's stance on one statement, at most one per
// (statement, party) pair. The dimension vector is computed once during
// ingestion and immutable afterwards.
type PartyPositionModel struct {
	Base
	StatementID string          `json:"statement_id" gorm:"index:idx_position_statement_party,unique;not null"`
	PartyID     string          `json:"party_id"     gorm:"index:idx_position_statement_party,unique;not null"`
	Stance      PartyStance     `json:"stance"       gorm:"type:varchar(20);not null"`
	Explanation string          `json:"explanation"  gorm:"type:text"`
	Dimensions  DimensionVector `json:"dimensions"   gorm:"type:json;serializer:json"`

	Party *PartyModel `json:"party,omitempty" gorm:"foreignKey:PartyID"`
}

func (PartyPositionModel) TableName() string { return "party_positions" }

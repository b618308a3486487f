package models

import "time"

// UserProfileModel is an anonymous profile; the Base ID doubles as the
// shareable profile UUID.
type UserProfileModel struct {
	Base
	SessionKey  string     `json:"-"            gorm:"index"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	LastActive  *time.Time `json:"last_active"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }

// UserResponseModel is a user's free-text opinion on a statement plus its
// classification state. ClassifiedLabel preserves the original automatic
// label when a user overrides it.
type UserResponseModel struct {
	Base
	ProfileID   string `json:"profile_id"   gorm:"index:idx_response_profile_statement,unique;not null"`
	StatementID string `json:"statement_id" gorm:"index:idx_response_profile_statement,unique;not null"`
	Opinion     string `json:"opinion"      gorm:"type:text;not null"`

	Label           Stance      `json:"label"            gorm:"type:varchar(20)"`
	LabelConfidence float64     `json:"label_confidence"`
	LabelSource     LabelSource `json:"label_source"     gorm:"type:varchar(20)"`
	ClassifiedLabel Stance      `json:"classified_label" gorm:"type:varchar(20)"`

	ConfidenceRating int `json:"confidence_rating" gorm:"not null"` // 1-5
	ImportanceRating int `json:"importance_rating" gorm:"not null"` // 1-5

	Statement *StatementModel `json:"statement,omitempty" gorm:"foreignKey:StatementID"`
}

func (UserResponseModel) TableName() string { return "user_responses" }

package models

// AIResultModel is the durable half of the AI result cache: one row per
// input fingerprint. Values are only stored for computations that are pure
// with respect to their fingerprinted inputs, so a cached row never diverges
// from a fresh recomputation.
type AIResultModel struct {
	Base
	Fingerprint string `json:"fingerprint" gorm:"uniqueIndex;not null"` // sha256 hex
	Kind        string `json:"kind"        gorm:"index;not null"`
	Result      []byte `json:"result"      gorm:"type:longblob;not null"`
}

func (AIResultModel) TableName() string { return "ai_results" }

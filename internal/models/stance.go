package models

// Stance is a user's position on a statement.
type Stance string

const (
	StanceAgree    Stance = "agree"
	StanceNeutral  Stance = "neutral"
	StanceDisagree Stance = "disagree"
)

// Valid reports whether s is one of the three user stances.
func (s Stance) Valid() bool {
	switch s {
	case StanceAgree, StanceNeutral, StanceDisagree:
		return true
	}
	return false
}

// PartyStance is a party's five-valued position on a statement.
type PartyStance string

const (
	PartyStronglyAgree    PartyStance = "strongly_agree"
	PartyAgree            PartyStance = "agree"
	PartyNeutral          PartyStance = "neutral"
	PartyDisagree         PartyStance = "disagree"
	PartyStronglyDisagree PartyStance = "strongly_disagree"
)

// Normalize collapses the five-valued party stance onto the three-valued
// user stance scale. Unknown values map to neutral.
func (s PartyStance) Normalize() Stance {
	switch s {
	case PartyStronglyAgree, PartyAgree:
		return StanceAgree
	case PartyStronglyDisagree, PartyDisagree:
		return StanceDisagree
	}
	return StanceNeutral
}

// LabelSource records which mechanism set a response label.
type LabelSource string

const (
	LabelSourceRule  LabelSource = "rule"
	LabelSourceModel LabelSource = "model"
	LabelSourceUser  LabelSource = "user"
)

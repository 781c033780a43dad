package models

// BonusType selects how upset bonuses are computed.
type BonusType string

const (
	// BonusSeedDifference scales the bonus by the seed gap of the upset.
	BonusSeedDifference BonusType = "seedDifference"
	// BonusFlat awards a fixed bonus per correctly picked upset.
	BonusFlat BonusType = "flat"
)

// ScoringConfig is the league administrator's scoring rule set. Per-round
// point values are pointers so an unset field falls back to the engine's
// default table rather than scoring zero.
type ScoringConfig struct {
	RoundOf64    *float64 `bson:"roundOf64,omitempty" json:"roundOf64,omitempty"`
	RoundOf32    *float64 `bson:"roundOf32,omitempty" json:"roundOf32,omitempty"`
	Sweet16      *float64 `bson:"sweet16,omitempty" json:"sweet16,omitempty"`
	Elite8       *float64 `bson:"elite8,omitempty" json:"elite8,omitempty"`
	FinalFour    *float64 `bson:"finalFour,omitempty" json:"finalFour,omitempty"`
	Championship *float64 `bson:"championship,omitempty" json:"championship,omitempty"`

	BonusEnabled           bool      `bson:"bonusEnabled" json:"bonusEnabled"`
	BonusType              BonusType `bson:"bonusType" json:"bonusType"`
	BonusPerSeedDifference float64   `bson:"bonusPerSeedDifference" json:"bonusPerSeedDifference"`
	FlatBonusValue         float64   `bson:"flatBonusValue" json:"flatBonusValue"`
}

// RoundValue returns the configured point value for a round, or nil when the
// league has not customized it.
func (c *ScoringConfig) RoundValue(r Round) *float64 {
	switch r {
	case RoundOf64:
		return c.RoundOf64
	case RoundOf32:
		return c.RoundOf32
	case Sweet16:
		return c.Sweet16
	case Elite8:
		return c.Elite8
	case FinalFour:
		return c.FinalFour
	case Championship:
		return c.Championship
	}
	return nil
}

// RoundScore is the per-round slice of a score breakdown. Possible
// accumulates the round's point value for every scored matchup regardless of
// correctness, for fill-rate and max-potential reporting.
type RoundScore struct {
	Base     float64 `bson:"base" json:"base"`
	Bonus    float64 `bson:"bonus" json:"bonus"`
	Total    float64 `bson:"total" json:"total"`
	Correct  int     `bson:"correct" json:"correct"`
	Possible float64 `bson:"possible" json:"possible"`
}

// ScoreResult is a derived score for one entry against the official bracket.
// It is recomputed on demand and never stored as authoritative state.
type ScoreResult struct {
	Points         float64              `json:"points"`
	BasePoints     float64              `json:"basePoints"`
	BonusPoints    float64              `json:"bonusPoints"`
	CorrectPicks   int                  `json:"correctPicks"`
	RoundBreakdown map[Round]RoundScore `json:"roundBreakdown"`
}

// Standing is one row of a league leaderboard.
type Standing struct {
	Rank         int     `json:"rank"`
	UserID       int     `json:"userId"`
	UserName     string  `json:"userName"`
	Points       float64 `json:"points"`
	BasePoints   float64 `json:"basePoints"`
	BonusPoints  float64 `json:"bonusPoints"`
	CorrectPicks int     `json:"correctPicks"`
}

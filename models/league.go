package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeagueStatus tracks the league lifecycle.
type LeagueStatus string

const (
	LeagueOpen  LeagueStatus = "open"
	LeagueEnded LeagueStatus = "ended"
)

// SemifinalPairing names the two regions whose Elite Eight winners meet in
// one Final Four semifinal.
type SemifinalPairing struct {
	Region1 Region `bson:"region1" json:"region1"`
	Region2 Region `bson:"region2" json:"region2"`
}

// FinalFourConfig maps the four regions onto the two Final Four semifinals.
// Region1 fills the team1 slot of its semifinal, Region2 the team2 slot.
type FinalFourConfig struct {
	Semifinal1 SemifinalPairing `bson:"semifinal1" json:"semifinal1"`
	Semifinal2 SemifinalPairing `bson:"semifinal2" json:"semifinal2"`
}

// LeagueWinner records a final-standings winner when the league is ended.
type LeagueWinner struct {
	UserID       int     `bson:"user_id" json:"userId"`
	UserName     string  `bson:"user_name" json:"userName"`
	Points       float64 `bson:"points" json:"points"`
	CorrectPicks int     `bson:"correct_picks" json:"correctPicks"`
}

// League is one bracket pool: its teams, scoring rules, round locks, and
// membership root. The admin owns the official results bracket.
type League struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Season       int                `bson:"season" json:"season"`
	AdminID      int                `bson:"admin_id" json:"adminId"`
	InviteCode   string             `bson:"invite_code" json:"inviteCode"`
	Status       LeagueStatus       `bson:"status" json:"status"`
	Teams        TeamAssignment     `bson:"teams" json:"teams"`
	Scoring      ScoringConfig      `bson:"scoring" json:"scoring"`
	FinalFour    FinalFourConfig    `bson:"final_four" json:"finalFour"`
	LockedRounds map[Round]bool     `bson:"locked_rounds" json:"lockedRounds"`
	Winners      []LeagueWinner     `bson:"winners,omitempty" json:"winners,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsAdmin reports whether the given user administers this league.
func (l *League) IsAdmin(userID int) bool {
	return l.AdminID == userID
}

// IsEnded reports whether the league has been ended.
func (l *League) IsEnded() bool {
	return l.Status == LeagueEnded
}

// IsRoundLocked reports whether members may no longer change picks in the
// given round. The official bracket is never subject to locks.
func (l *League) IsRoundLocked(r Round) bool {
	return l.LockedRounds[r]
}

// HasLockedRounds reports whether any round is currently locked.
func (l *League) HasLockedRounds() bool {
	for _, locked := range l.LockedRounds {
		if locked {
			return true
		}
	}
	return false
}

// BracketRole distinguishes the admin-maintained results bracket from a
// member's predictions.
type BracketRole string

const (
	BracketRoleOfficial BracketRole = "official"
	BracketRoleEntry    BracketRole = "entry"
)

// BracketEntry is the persistence envelope around a bracket value: one
// official document per league plus one entry document per member.
type BracketEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeagueID  primitive.ObjectID `bson:"league_id" json:"leagueId"`
	UserID    int                `bson:"user_id" json:"userId"` // 0 for the official bracket
	Role      BracketRole        `bson:"role" json:"role"`
	Bracket   Bracket            `bson:"bracket" json:"bracket"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsOfficial reports whether this document is the league's results bracket.
func (e *BracketEntry) IsOfficial() bool {
	return e.Role == BracketRoleOfficial
}

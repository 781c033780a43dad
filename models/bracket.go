package models

// Round names one of the six tournament stages, in wire format.
type Round string

const (
	RoundOf64    Round = "roundOf64"
	RoundOf32    Round = "roundOf32"
	Sweet16      Round = "sweet16"
	Elite8       Round = "elite8"
	FinalFour    Round = "finalFour"
	Championship Round = "championship"
)

// RoundOrder is the fixed progression of the tournament.
var RoundOrder = []Round{RoundOf64, RoundOf32, Sweet16, Elite8, FinalFour, Championship}

// MatchupsPerRound gives the expected matchup count for every round.
// The championship is a single matchup object, not an array.
var MatchupsPerRound = map[Round]int{
	RoundOf64:    32,
	RoundOf32:    16,
	Sweet16:      8,
	Elite8:       4,
	FinalFour:    2,
	Championship: 1,
}

// NextRound returns the round that follows r. The second return value is
// false for the championship (terminal) and for unknown round names.
func NextRound(r Round) (Round, bool) {
	for i, round := range RoundOrder {
		if round == r && i+1 < len(RoundOrder) {
			return RoundOrder[i+1], true
		}
	}
	return "", false
}

// IsValidRound reports whether r names one of the six tournament rounds.
func IsValidRound(r Round) bool {
	_, ok := MatchupsPerRound[r]
	return ok
}

// Matchup is a single game between two named teams. Winner is either empty
// or matches one of the two team names.
type Matchup struct {
	Team1      string `bson:"team1" json:"team1"`
	Team1Seed  *int   `bson:"team1Seed" json:"team1Seed"`
	Team2      string `bson:"team2" json:"team2"`
	Team2Seed  *int   `bson:"team2Seed" json:"team2Seed"`
	Winner     string `bson:"winner" json:"winner"`
	WinnerSeed *int   `bson:"winnerSeed" json:"winnerSeed"`
}

// EmptyMatchup returns a matchup with no teams and no winner.
func EmptyMatchup() Matchup {
	return Matchup{}
}

// HasTeams reports whether both team slots are filled.
func (m *Matchup) HasTeams() bool {
	return m.Team1 != "" && m.Team2 != ""
}

// HasWinner reports whether a winner has been recorded.
func (m *Matchup) HasWinner() bool {
	return m.Winner != ""
}

// SlotOf returns 1 or 2 when name matches team1 or team2 respectively,
// and 0 when it matches neither.
func (m *Matchup) SlotOf(name string) int {
	if TeamNamesEqual(name, m.Team1) {
		return 1
	}
	if TeamNamesEqual(name, m.Team2) {
		return 2
	}
	return 0
}

// ClearWinner removes the recorded winner, leaving team identity untouched.
func (m *Matchup) ClearWinner() {
	m.Winner = ""
	m.WinnerSeed = nil
}

// Bracket is the full single-elimination tournament tree: six ordered rounds
// plus a denormalized champion mirroring the championship winner. The same
// shape serves both the official results bracket and each user's entry.
type Bracket struct {
	RoundOf64    []Matchup `bson:"roundOf64" json:"roundOf64"`
	RoundOf32    []Matchup `bson:"roundOf32" json:"roundOf32"`
	Sweet16      []Matchup `bson:"sweet16" json:"sweet16"`
	Elite8       []Matchup `bson:"elite8" json:"elite8"`
	FinalFour    []Matchup `bson:"finalFour" json:"finalFour"`
	Championship Matchup   `bson:"championship" json:"championship"`
	Champion     string    `bson:"champion" json:"champion"`
	ChampionSeed *int      `bson:"championSeed" json:"championSeed"`
}

// Matchups returns the live matchup slice for an array round, or nil for
// the championship and unknown rounds. Callers mutate through the slice.
func (b *Bracket) Matchups(r Round) []Matchup {
	switch r {
	case RoundOf64:
		return b.RoundOf64
	case RoundOf32:
		return b.RoundOf32
	case Sweet16:
		return b.Sweet16
	case Elite8:
		return b.Elite8
	case FinalFour:
		return b.FinalFour
	}
	return nil
}

// SetMatchups replaces the matchup slice for an array round. Championship
// and unknown rounds are ignored.
func (b *Bracket) SetMatchups(r Round, matchups []Matchup) {
	switch r {
	case RoundOf64:
		b.RoundOf64 = matchups
	case RoundOf32:
		b.RoundOf32 = matchups
	case Sweet16:
		b.Sweet16 = matchups
	case Elite8:
		b.Elite8 = matchups
	case FinalFour:
		b.FinalFour = matchups
	}
}

// Clone returns a deep copy of the bracket. Mutating the copy never affects
// the original, including through seed pointers.
func (b Bracket) Clone() Bracket {
	clone := b
	clone.RoundOf64 = cloneMatchups(b.RoundOf64)
	clone.RoundOf32 = cloneMatchups(b.RoundOf32)
	clone.Sweet16 = cloneMatchups(b.Sweet16)
	clone.Elite8 = cloneMatchups(b.Elite8)
	clone.FinalFour = cloneMatchups(b.FinalFour)
	clone.Championship = cloneMatchup(b.Championship)
	clone.ChampionSeed = cloneSeed(b.ChampionSeed)
	return clone
}

func cloneMatchups(matchups []Matchup) []Matchup {
	if matchups == nil {
		return nil
	}
	out := make([]Matchup, len(matchups))
	for i := range matchups {
		out[i] = cloneMatchup(matchups[i])
	}
	return out
}

func cloneMatchup(m Matchup) Matchup {
	m.Team1Seed = cloneSeed(m.Team1Seed)
	m.Team2Seed = cloneSeed(m.Team2Seed)
	m.WinnerSeed = cloneSeed(m.WinnerSeed)
	return m
}

func cloneSeed(seed *int) *int {
	if seed == nil {
		return nil
	}
	v := *seed
	return &v
}

// Seed returns a pointer to value, for building matchups in place.
func Seed(value int) *int {
	return &value
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeagueRoundLocks(t *testing.T) {
	league := &League{}
	assert.False(t, league.IsRoundLocked(RoundOf64), "nil lock map means nothing is locked")
	assert.False(t, league.HasLockedRounds())

	league.LockedRounds = map[Round]bool{RoundOf64: true, Sweet16: false}
	assert.True(t, league.IsRoundLocked(RoundOf64))
	assert.False(t, league.IsRoundLocked(Sweet16))
	assert.True(t, league.HasLockedRounds())

	league.LockedRounds[RoundOf64] = false
	assert.False(t, league.HasLockedRounds(), "explicitly unlocked rounds do not count")
}

func TestLeagueLifecycle(t *testing.T) {
	league := &League{AdminID: 1, Status: LeagueOpen}

	assert.True(t, league.IsAdmin(1))
	assert.False(t, league.IsAdmin(2))
	assert.False(t, league.IsEnded())

	league.Status = LeagueEnded
	assert.True(t, league.IsEnded())
}

func TestScoringConfigRoundValue(t *testing.T) {
	v := 3.5
	cfg := ScoringConfig{Sweet16: &v}

	assert.Equal(t, &v, cfg.RoundValue(Sweet16))
	assert.Nil(t, cfg.RoundValue(RoundOf64))
	assert.Nil(t, cfg.RoundValue(Round("playIn")))
}

func TestBracketEntryIsOfficial(t *testing.T) {
	official := &BracketEntry{Role: BracketRoleOfficial}
	entry := &BracketEntry{Role: BracketRoleEntry}

	assert.True(t, official.IsOfficial())
	assert.False(t, entry.IsOfficial())
}

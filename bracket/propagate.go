// Package bracket is the authoritative propagation and scoring engine for
// single-elimination tournament brackets. Every function operates on bracket
// values and returns new values; the package performs no I/O and holds no
// state, so callers may invoke it concurrently without coordination.
package bracket

import (
	"errors"
	"fmt"

	"bracket-pool-go/models"
)

var (
	// ErrInvalidSelection is returned when the chosen winner does not match
	// either team of the targeted matchup, or the matchup's teams are unset.
	ErrInvalidSelection = errors.New("invalid winner selection")
	// ErrUnknownRound is returned for a round name outside the six stages.
	ErrUnknownRound = errors.New("unknown round")
	// ErrIndexOutOfRange is returned for a matchup index outside the round.
	ErrIndexOutOfRange = errors.New("matchup index out of range")
)

// SelectWinner records winnerName as the winner of the given matchup and
// advances it into the correct slot of the next round, clearing every
// downstream winner that depended on the previous state. The input bracket
// is never mutated; on error it is returned unchanged.
//
// The stored winner adopts the matchup's own recorded spelling, so the
// winner-equals-team invariant holds exactly even though name comparison is
// trimmed and case-insensitive. When winnerSeed is nil the matched team's
// recorded seed is used.
func SelectWinner(b models.Bracket, round models.Round, matchupIndex int, winnerName string, winnerSeed *int, finalFour models.FinalFourConfig) (models.Bracket, error) {
	if !models.IsValidRound(round) {
		return b, fmt.Errorf("%w: %q", ErrUnknownRound, round)
	}

	next := b.Clone()

	var target *models.Matchup
	if round == models.Championship {
		target = &next.Championship
	} else {
		matchups := next.Matchups(round)
		if matchupIndex < 0 || matchupIndex >= len(matchups) {
			return b, fmt.Errorf("%w: round %s has %d matchups, got index %d", ErrIndexOutOfRange, round, len(matchups), matchupIndex)
		}
		target = &matchups[matchupIndex]
	}

	if !target.HasTeams() {
		return b, fmt.Errorf("%w: matchup teams are not set yet", ErrInvalidSelection)
	}
	slot := target.SlotOf(winnerName)
	if slot == 0 {
		return b, fmt.Errorf("%w: %q is neither %q nor %q", ErrInvalidSelection, winnerName, target.Team1, target.Team2)
	}

	if slot == 1 {
		target.Winner = target.Team1
		target.WinnerSeed = pickSeed(winnerSeed, target.Team1Seed)
	} else {
		target.Winner = target.Team2
		target.WinnerSeed = pickSeed(winnerSeed, target.Team2Seed)
	}

	if round == models.Championship {
		// Terminal round: mirror the winner into the denormalized champion.
		next.Champion = target.Winner
		next.ChampionSeed = copySeed(target.WinnerSeed)
		return next, nil
	}

	advanceWinner(&next, round, matchupIndex, target.Winner, target.WinnerSeed, finalFour)
	return next, nil
}

// advanceWinner places a freshly selected winner into its slot in the next
// round and invalidates the stale winners downstream of that slot.
func advanceWinner(b *models.Bracket, round models.Round, matchupIndex int, winner string, winnerSeed *int, finalFour models.FinalFourConfig) {
	switch round {
	case models.Elite8:
		// Placement is driven by the region-to-semifinal mapping, not by
		// positional halving: the four regional champions pair up according
		// to the tournament's bracket geometry.
		ensureRoundSize(b, models.FinalFour)
		semiIndex, firstSlot := semifinalSlot(finalFour, regionForElite8Index(matchupIndex))
		dest := &b.FinalFour[semiIndex]
		if firstSlot {
			dest.Team1 = winner
			dest.Team1Seed = copySeed(winnerSeed)
		} else {
			dest.Team2 = winner
			dest.Team2Seed = copySeed(winnerSeed)
		}
		clearDownstream(b, models.FinalFour, semiIndex, finalFour)

	case models.FinalFour:
		// Each call knows only one semifinal winner, so the championship is
		// rebuilt from the other semifinal's current winner (read, not
		// written) plus the new one.
		ensureRoundSize(b, models.FinalFour)
		champ := &b.Championship
		if matchupIndex%2 == 0 {
			champ.Team1 = winner
			champ.Team1Seed = copySeed(winnerSeed)
			champ.Team2 = b.FinalFour[1].Winner
			champ.Team2Seed = copySeed(b.FinalFour[1].WinnerSeed)
		} else {
			champ.Team2 = winner
			champ.Team2Seed = copySeed(winnerSeed)
			champ.Team1 = b.FinalFour[0].Winner
			champ.Team1Seed = copySeed(b.FinalFour[0].WinnerSeed)
		}
		clearDownstream(b, models.Championship, 0, finalFour)

	default:
		// Standard halving: winners of matchups 2k and 2k+1 meet at matchup
		// k of the next round.
		nextRound, ok := models.NextRound(round)
		if !ok {
			return
		}
		ensureRoundSize(b, nextRound)
		nextIndex := matchupIndex / 2
		dest := &b.Matchups(nextRound)[nextIndex]
		if matchupIndex%2 == 0 {
			dest.Team1 = winner
			dest.Team1Seed = copySeed(winnerSeed)
		} else {
			dest.Team2 = winner
			dest.Team2Seed = copySeed(winnerSeed)
		}
		clearDownstream(b, nextRound, nextIndex, finalFour)
	}
}

// clearDownstream clears the winner at (round, index) and of every matchup
// reachable from it, down to the champion. Team identity fields are never
// touched: placements that are still valid survive, only derived winners go.
func clearDownstream(b *models.Bracket, round models.Round, index int, finalFour models.FinalFourConfig) {
	if round == models.Championship {
		b.Championship.ClearWinner()
		b.Champion = ""
		b.ChampionSeed = nil
		return
	}

	matchups := b.Matchups(round)
	if index >= 0 && index < len(matchups) {
		matchups[index].ClearWinner()
	}

	switch round {
	case models.Elite8:
		semiIndex, _ := semifinalSlot(finalFour, regionForElite8Index(index))
		clearDownstream(b, models.FinalFour, semiIndex, finalFour)
	case models.FinalFour:
		clearDownstream(b, models.Championship, 0, finalFour)
	default:
		nextRound, ok := models.NextRound(round)
		if !ok {
			return
		}
		clearDownstream(b, nextRound, index/2, finalFour)
	}
}

// ensureRoundSize pads a short round out to its expected matchup count, so
// propagation stays defensive against partially populated or legacy data.
func ensureRoundSize(b *models.Bracket, round models.Round) {
	want := models.MatchupsPerRound[round]
	matchups := b.Matchups(round)
	for len(matchups) < want {
		matchups = append(matchups, models.EmptyMatchup())
	}
	b.SetMatchups(round, matchups)
}

func pickSeed(provided, recorded *int) *int {
	if provided != nil {
		return copySeed(provided)
	}
	return copySeed(recorded)
}

func copySeed(seed *int) *int {
	if seed == nil {
		return nil
	}
	v := *seed
	return &v
}

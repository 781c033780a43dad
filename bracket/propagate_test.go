package bracket

import (
	"fmt"
	"testing"

	"bracket-pool-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTeams builds a full 64-team assignment with deterministic names like
// "east-01" for seed 1 of the east region.
func testTeams() models.TeamAssignment {
	teams := models.TeamAssignment{}
	for _, region := range models.RegionOrder {
		slots := make([]models.Team, models.SeedsPerRegion)
		for i := range slots {
			slots[i] = models.Team{
				Name: fmt.Sprintf("%s-%02d", region, i+1),
				Seed: i + 1,
			}
		}
		teams[region] = slots
	}
	return teams
}

func teamName(region models.Region, seed int) string {
	return fmt.Sprintf("%s-%02d", region, seed)
}

func TestSelectWinnerAdvancesToNextRound(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	// east-01 vs east-16 is the first matchup of the first round
	updated, err := SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)

	assert.Equal(t, teamName(models.RegionEast, 1), updated.RoundOf64[0].Winner)
	require.NotNil(t, updated.RoundOf64[0].WinnerSeed)
	assert.Equal(t, 1, *updated.RoundOf64[0].WinnerSeed)

	// Winner of matchup 0 fills the team1 slot of next round matchup 0
	assert.Equal(t, teamName(models.RegionEast, 1), updated.RoundOf32[0].Team1)
	require.NotNil(t, updated.RoundOf32[0].Team1Seed)
	assert.Equal(t, 1, *updated.RoundOf32[0].Team1Seed)
	assert.Empty(t, updated.RoundOf32[0].Team2)
}

func TestSelectWinnerOddIndexFillsSecondSlot(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	// east-08 vs east-09 is matchup 1; its winner meets matchup 0's winner
	updated, err := SelectWinner(b, models.RoundOf64, 1, teamName(models.RegionEast, 9), nil, ff)
	require.NoError(t, err)

	assert.Empty(t, updated.RoundOf32[0].Team1)
	assert.Equal(t, teamName(models.RegionEast, 9), updated.RoundOf32[0].Team2)
	require.NotNil(t, updated.RoundOf32[0].Team2Seed)
	assert.Equal(t, 9, *updated.RoundOf32[0].Team2Seed)
}

func TestSelectWinnerDoesNotMutateInput(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	_, err := SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)

	assert.Empty(t, b.RoundOf64[0].Winner)
	assert.Empty(t, b.RoundOf32[0].Team1)
}

func TestSelectWinnerMatchesCaseInsensitively(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	b.RoundOf64[0].Team1 = "Duke"
	ff := DefaultFinalFourConfig()

	updated, err := SelectWinner(b, models.RoundOf64, 0, "  DUKE ", nil, ff)
	require.NoError(t, err)

	// Stored winner adopts the matchup's recorded spelling
	assert.Equal(t, "Duke", updated.RoundOf64[0].Winner)
	assert.Equal(t, "Duke", updated.RoundOf32[0].Team1)
}

func TestSelectWinnerValidation(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	tests := []struct {
		name    string
		round   models.Round
		index   int
		winner  string
		wantErr error
	}{
		{"unknown round", models.Round("playIn"), 0, "east-01", ErrUnknownRound},
		{"negative index", models.RoundOf64, -1, "east-01", ErrIndexOutOfRange},
		{"index past end", models.RoundOf64, 32, "east-01", ErrIndexOutOfRange},
		{"winner not in matchup", models.RoundOf64, 0, "gonzaga", ErrInvalidSelection},
		{"teams not yet set", models.RoundOf32, 0, "east-01", ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectWinner(b, tt.round, tt.index, tt.winner, nil, ff)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelectWinnerUsesProvidedSeed(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	updated, err := SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 16), models.Seed(16), ff)
	require.NoError(t, err)
	require.NotNil(t, updated.RoundOf64[0].WinnerSeed)
	assert.Equal(t, 16, *updated.RoundOf64[0].WinnerSeed)
}

func TestChangedPickClearsDownstreamWinners(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	// Advance east-01 through the first two rounds.
	var err error
	b, err = SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)
	b, err = SelectWinner(b, models.RoundOf64, 1, teamName(models.RegionEast, 8), nil, ff)
	require.NoError(t, err)
	b, err = SelectWinner(b, models.RoundOf32, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)
	require.Equal(t, teamName(models.RegionEast, 1), b.Sweet16[0].Team1)

	// Changing the first-round pick invalidates everything it fed.
	b, err = SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 16), nil, ff)
	require.NoError(t, err)

	assert.Equal(t, teamName(models.RegionEast, 16), b.RoundOf32[0].Team1)
	assert.Empty(t, b.RoundOf32[0].Winner, "downstream winner should be cleared")
	// Team identity downstream is preserved; only derived winners go.
	assert.Equal(t, teamName(models.RegionEast, 1), b.Sweet16[0].Team1,
		"stale team placement survives until a new winner overwrites it")
	assert.Empty(t, b.Sweet16[0].Winner)
	assert.Empty(t, b.Champion)
}

func TestElite8AdvancesByRegionMapping(t *testing.T) {
	ff := DefaultFinalFourConfig()

	// Elite Eight matchups sit one per region in fixed region order.
	tests := []struct {
		index     int
		region    models.Region
		semiIndex int
		firstSlot bool
	}{
		{0, models.RegionEast, 1, true},
		{1, models.RegionWest, 0, false},
		{2, models.RegionMidwest, 1, false},
		{3, models.RegionSouth, 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.region), func(t *testing.T) {
			b := CreateBracketFromTeams(testTeams())
			winner := teamName(tt.region, 1)
			b.Elite8[tt.index] = models.Matchup{
				Team1: winner, Team1Seed: models.Seed(1),
				Team2: teamName(tt.region, 2), Team2Seed: models.Seed(2),
			}

			updated, err := SelectWinner(b, models.Elite8, tt.index, winner, nil, ff)
			require.NoError(t, err)

			semi := updated.FinalFour[tt.semiIndex]
			if tt.firstSlot {
				assert.Equal(t, winner, semi.Team1)
			} else {
				assert.Equal(t, winner, semi.Team2)
			}
		})
	}
}

func TestElite8ToleratesMissingFinalFourRound(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	b.FinalFour = nil
	b.Elite8[3] = models.Matchup{
		Team1: teamName(models.RegionSouth, 1), Team1Seed: models.Seed(1),
		Team2: teamName(models.RegionSouth, 2), Team2Seed: models.Seed(2),
	}

	updated, err := SelectWinner(b, models.Elite8, 3, teamName(models.RegionSouth, 1), nil, DefaultFinalFourConfig())
	require.NoError(t, err)
	require.Len(t, updated.FinalFour, models.MatchupsPerRound[models.FinalFour])
	assert.Equal(t, teamName(models.RegionSouth, 1), updated.FinalFour[0].Team1)
}

func TestFinalFourRebuildsChampionship(t *testing.T) {
	ff := DefaultFinalFourConfig()
	b := CreateBracketFromTeams(testTeams())

	south := teamName(models.RegionSouth, 1)
	east := teamName(models.RegionEast, 2)
	b.FinalFour[0] = models.Matchup{
		Team1: south, Team1Seed: models.Seed(1),
		Team2: teamName(models.RegionWest, 3), Team2Seed: models.Seed(3),
	}
	b.FinalFour[1] = models.Matchup{
		Team1: east, Team1Seed: models.Seed(2),
		Team2: teamName(models.RegionMidwest, 4), Team2Seed: models.Seed(4),
	}

	var err error
	b, err = SelectWinner(b, models.FinalFour, 0, south, nil, ff)
	require.NoError(t, err)
	assert.Equal(t, south, b.Championship.Team1)
	assert.Empty(t, b.Championship.Team2, "other semifinal has no winner yet")

	b, err = SelectWinner(b, models.FinalFour, 1, east, nil, ff)
	require.NoError(t, err)
	assert.Equal(t, south, b.Championship.Team1)
	assert.Equal(t, east, b.Championship.Team2)

	b, err = SelectWinner(b, models.Championship, 0, east, nil, ff)
	require.NoError(t, err)
	assert.Equal(t, east, b.Championship.Winner)
	assert.Equal(t, east, b.Champion)
	require.NotNil(t, b.ChampionSeed)
	assert.Equal(t, 2, *b.ChampionSeed)
}

func TestChangedSemifinalWinnerClearsChampion(t *testing.T) {
	ff := DefaultFinalFourConfig()
	b := CreateBracketFromTeams(testTeams())

	south := teamName(models.RegionSouth, 1)
	west := teamName(models.RegionWest, 3)
	east := teamName(models.RegionEast, 2)
	b.FinalFour[0] = models.Matchup{
		Team1: south, Team1Seed: models.Seed(1),
		Team2: west, Team2Seed: models.Seed(3),
	}
	b.FinalFour[1] = models.Matchup{
		Team1: east, Team1Seed: models.Seed(2),
		Team2: teamName(models.RegionMidwest, 4), Team2Seed: models.Seed(4),
	}

	var err error
	b, err = SelectWinner(b, models.FinalFour, 0, south, nil, ff)
	require.NoError(t, err)
	b, err = SelectWinner(b, models.FinalFour, 1, east, nil, ff)
	require.NoError(t, err)
	b, err = SelectWinner(b, models.Championship, 0, south, nil, ff)
	require.NoError(t, err)
	require.Equal(t, south, b.Champion)

	// Flipping a semifinal invalidates the recorded championship outcome.
	b, err = SelectWinner(b, models.FinalFour, 0, west, nil, ff)
	require.NoError(t, err)
	assert.Equal(t, west, b.Championship.Team1)
	assert.Empty(t, b.Championship.Winner)
	assert.Empty(t, b.Champion)
	assert.Nil(t, b.ChampionSeed)
}

func TestSelectWinnerIsIdempotent(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	ff := DefaultFinalFourConfig()

	first, err := SelectWinner(b, models.RoundOf64, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)
	second, err := SelectWinner(first, models.RoundOf64, 0, teamName(models.RegionEast, 1), nil, ff)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

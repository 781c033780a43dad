package bracket

import (
	"strings"

	"bracket-pool-go/models"
)

// initialSeedPairs is the standard tournament pairing for a 16-team region's
// first round: 1v16, 8v9, 5v12, 4v13, 6v11, 3v14, 7v10, 2v15.
var initialSeedPairs = [8][2]int{
	{1, 16}, {8, 9}, {5, 12}, {4, 13}, {6, 11}, {3, 14}, {7, 10}, {2, 15},
}

// GenerateInitialRoundOf64 builds the 32 first-round matchups from a team
// assignment, applying the standard seed pairs independently to each region
// in fixed region order. Unset team slots yield matchups with seeds but
// empty names.
func GenerateInitialRoundOf64(teams models.TeamAssignment) []models.Matchup {
	matchups := make([]models.Matchup, 0, models.MatchupsPerRound[models.RoundOf64])
	for _, region := range models.RegionOrder {
		slots := teams[region]
		for _, pair := range initialSeedPairs {
			matchups = append(matchups, models.Matchup{
				Team1:     teamNameBySeed(slots, pair[0]),
				Team1Seed: models.Seed(pair[0]),
				Team2:     teamNameBySeed(slots, pair[1]),
				Team2Seed: models.Seed(pair[1]),
			})
		}
	}
	return matchups
}

func teamNameBySeed(slots []models.Team, seed int) string {
	if seed-1 < 0 || seed-1 >= len(slots) {
		return ""
	}
	return strings.TrimSpace(slots[seed-1].Name)
}

// EmptyDownstreamRounds returns a bracket with every round beyond the first
// filled with empty matchups and no champion. The first round is left for
// the caller to populate; the same shape backs both fresh brackets and
// "reset results, keep teams".
func EmptyDownstreamRounds() models.Bracket {
	return models.Bracket{
		RoundOf32:    emptyRound(models.RoundOf32),
		Sweet16:      emptyRound(models.Sweet16),
		Elite8:       emptyRound(models.Elite8),
		FinalFour:    emptyRound(models.FinalFour),
		Championship: models.EmptyMatchup(),
	}
}

func emptyRound(round models.Round) []models.Matchup {
	return make([]models.Matchup, models.MatchupsPerRound[round])
}

// CreateBracketFromTeams composes the template bracket new participants
// start from: only the first round carries team names and seeds, every
// later round is empty.
func CreateBracketFromTeams(teams models.TeamAssignment) models.Bracket {
	b := EmptyDownstreamRounds()
	b.RoundOf64 = GenerateInitialRoundOf64(teams)
	return b
}

// ResetResults returns a copy of the bracket with every winner and all
// downstream rounds cleared while preserving the first round's team
// placements.
func ResetResults(b models.Bracket) models.Bracket {
	clone := b.Clone()
	reset := EmptyDownstreamRounds()
	reset.RoundOf64 = clone.RoundOf64
	for i := range reset.RoundOf64 {
		reset.RoundOf64[i].ClearWinner()
	}
	return reset
}

package bracket

import (
	"bracket-pool-go/models"
)

// DefaultRoundPoints is the fallback per-round point table applied whenever
// a league's scoring config leaves a round unset. It is the single source of
// the historical 1/2/4/8/16/32 progression.
var DefaultRoundPoints = map[models.Round]float64{
	models.RoundOf64:    1,
	models.RoundOf32:    2,
	models.Sweet16:      4,
	models.Elite8:       8,
	models.FinalFour:    16,
	models.Championship: 32,
}

// RoundPoints resolves the point value for a round from the config, falling
// back to DefaultRoundPoints.
func RoundPoints(cfg models.ScoringConfig, round models.Round) float64 {
	if v := cfg.RoundValue(round); v != nil {
		return *v
	}
	return DefaultRoundPoints[round]
}

// CalculateScore compares a user's bracket against the official results and
// produces a deterministic score breakdown under the given rules. The
// computation is pure and tolerant of partial data: a missing round or an
// absent pick contributes zero rather than failing.
func CalculateScore(user, official models.Bracket, cfg models.ScoringConfig) models.ScoreResult {
	result := models.ScoreResult{
		RoundBreakdown: make(map[models.Round]models.RoundScore, len(models.RoundOrder)),
	}

	for _, round := range models.RoundOrder {
		points := RoundPoints(cfg, round)

		var rs models.RoundScore
		if round == models.Championship {
			rs = scoreMatchup(user.Championship, official.Championship, points, cfg)
		} else {
			userMatchups := user.Matchups(round)
			officialMatchups := official.Matchups(round)
			for i := 0; i < len(userMatchups) && i < len(officialMatchups); i++ {
				ms := scoreMatchup(userMatchups[i], officialMatchups[i], points, cfg)
				rs.Base += ms.Base
				rs.Bonus += ms.Bonus
				rs.Total += ms.Total
				rs.Correct += ms.Correct
				rs.Possible += ms.Possible
			}
		}

		result.RoundBreakdown[round] = rs
		result.BasePoints += rs.Base
		result.BonusPoints += rs.Bonus
		result.CorrectPicks += rs.Correct
	}

	result.Points = result.BasePoints + result.BonusPoints
	return result
}

// scoreMatchup scores a single pick. Possible always carries the round's
// point value so callers can report max-potential totals for partially
// filled brackets.
func scoreMatchup(user, official models.Matchup, points float64, cfg models.ScoringConfig) models.RoundScore {
	rs := models.RoundScore{Possible: points}

	if !official.HasWinner() || !user.HasWinner() {
		return rs
	}
	if !models.TeamNamesEqual(user.Winner, official.Winner) {
		return rs
	}

	rs.Base = points
	rs.Correct = 1
	if cfg.BonusEnabled {
		rs.Bonus = upsetBonus(official, cfg)
	}
	rs.Total = rs.Base + rs.Bonus
	return rs
}

// upsetBonus awards a bonus when the official winner's seed is numerically
// worse than the better seed of the matchup, i.e. the nominal underdog won.
// Missing seed data disables the bonus for that pick; a favorite winning
// ("chalk") earns nothing regardless of configuration.
func upsetBonus(official models.Matchup, cfg models.ScoringConfig) float64 {
	if official.WinnerSeed == nil || official.Team1Seed == nil || official.Team2Seed == nil {
		return 0
	}

	better := *official.Team1Seed
	if *official.Team2Seed < better {
		better = *official.Team2Seed
	}
	if *official.WinnerSeed <= better {
		return 0
	}

	switch cfg.BonusType {
	case models.BonusFlat:
		return cfg.FlatBonusValue
	default:
		// Seed difference is the historical default bonus mode.
		return float64(*official.WinnerSeed-better) * cfg.BonusPerSeedDifference
	}
}

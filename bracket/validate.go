package bracket

import (
	"fmt"

	"bracket-pool-go/models"
)

// Violation describes one way a bracket deviates from the canonical shape.
type Violation struct {
	Round   models.Round
	Index   int // -1 for round-level violations
	Message string
}

func (v Violation) String() string {
	if v.Index < 0 {
		return fmt.Sprintf("%s: %s", v.Round, v.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", v.Round, v.Index, v.Message)
}

// ValidateShape checks round sizes and winner consistency across a bracket.
// The championship being a single object rather than an array is enforced by
// the type system. This helper exists for tests and diagnostics only; the
// propagation and scoring engines stay defensive about malformed data
// instead of validating on the hot path.
func ValidateShape(b models.Bracket) []Violation {
	var violations []Violation

	for _, round := range models.RoundOrder {
		if round == models.Championship {
			continue
		}
		matchups := b.Matchups(round)
		if want := models.MatchupsPerRound[round]; len(matchups) != want {
			violations = append(violations, Violation{
				Round:   round,
				Index:   -1,
				Message: fmt.Sprintf("expected %d matchups, found %d", want, len(matchups)),
			})
		}
		for i := range matchups {
			violations = append(violations, matchupViolations(round, i, matchups[i])...)
		}
	}

	violations = append(violations, matchupViolations(models.Championship, 0, b.Championship)...)

	if b.Champion != "" && !models.TeamNamesEqual(b.Champion, b.Championship.Winner) {
		violations = append(violations, Violation{
			Round:   models.Championship,
			Index:   0,
			Message: fmt.Sprintf("champion %q does not mirror championship winner %q", b.Champion, b.Championship.Winner),
		})
	}

	return violations
}

func matchupViolations(round models.Round, index int, m models.Matchup) []Violation {
	if !m.HasWinner() {
		return nil
	}
	if !m.HasTeams() {
		return []Violation{{
			Round:   round,
			Index:   index,
			Message: fmt.Sprintf("winner %q recorded on a matchup with unset teams", m.Winner),
		}}
	}
	if m.SlotOf(m.Winner) == 0 {
		return []Violation{{
			Round:   round,
			Index:   index,
			Message: fmt.Sprintf("winner %q is neither %q nor %q", m.Winner, m.Team1, m.Team2),
		}}
	}
	return nil
}

package bracket

import (
	"testing"

	"bracket-pool-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShapeCleanBracket(t *testing.T) {
	assert.Empty(t, ValidateShape(CreateBracketFromTeams(testTeams())))
	assert.Empty(t, ValidateShape(playedOutBracket(t)))
}

func TestValidateShapeRoundSize(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	b.Sweet16 = b.Sweet16[:5]

	violations := ValidateShape(b)
	require.Len(t, violations, 1)
	assert.Equal(t, models.Sweet16, violations[0].Round)
	assert.Equal(t, -1, violations[0].Index)
	assert.Contains(t, violations[0].String(), "expected 8 matchups, found 5")
}

func TestValidateShapeWinnerNotInMatchup(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	b.RoundOf64[3].Winner = "gonzaga"

	violations := ValidateShape(b)
	require.Len(t, violations, 1)
	assert.Equal(t, models.RoundOf64, violations[0].Round)
	assert.Equal(t, 3, violations[0].Index)
}

func TestValidateShapeWinnerOnUnsetTeams(t *testing.T) {
	b := CreateBracketFromTeams(testTeams())
	b.RoundOf32[0].Winner = "duke"

	violations := ValidateShape(b)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "unset teams")
}

func TestValidateShapeChampionMirror(t *testing.T) {
	b := playedOutBracket(t)
	b.Champion = "someone else"

	violations := ValidateShape(b)
	require.Len(t, violations, 1)
	assert.Equal(t, models.Championship, violations[0].Round)
	assert.Contains(t, violations[0].Message, "does not mirror")
}

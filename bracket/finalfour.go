package bracket

import (
	"bracket-pool-go/logging"
	"bracket-pool-go/models"
)

// DefaultFinalFourConfig returns the standard bracket geometry used when a
// league has not configured its semifinal pairings: South and West winners
// meet in the first semifinal, East and Midwest in the second. This is a
// last-resort fallback, not the primary mechanism; leagues normally carry an
// explicit mapping.
func DefaultFinalFourConfig() models.FinalFourConfig {
	return models.FinalFourConfig{
		Semifinal1: models.SemifinalPairing{Region1: models.RegionSouth, Region2: models.RegionWest},
		Semifinal2: models.SemifinalPairing{Region1: models.RegionEast, Region2: models.RegionMidwest},
	}
}

// semifinalSlot resolves which Final Four matchup a region's Elite Eight
// winner advances to, and whether it fills the team1 slot. A region missing
// from the configured mapping falls back to the default pairing with a
// warning, since league data may predate configurable mappings.
func semifinalSlot(cfg models.FinalFourConfig, region models.Region) (index int, firstSlot bool) {
	if idx, first, ok := lookupSemifinal(cfg, region); ok {
		return idx, first
	}
	logging.Warnf("BracketEngine: region %q not found in final four mapping, using default pairing", region)
	idx, first, _ := lookupSemifinal(DefaultFinalFourConfig(), region)
	return idx, first
}

func lookupSemifinal(cfg models.FinalFourConfig, region models.Region) (index int, firstSlot bool, ok bool) {
	switch region {
	case cfg.Semifinal1.Region1:
		return 0, true, true
	case cfg.Semifinal1.Region2:
		return 0, false, true
	case cfg.Semifinal2.Region1:
		return 1, true, true
	case cfg.Semifinal2.Region2:
		return 1, false, true
	}
	return 0, false, false
}

// regionForElite8Index maps an Elite Eight matchup index to its region.
// Elite Eight matchups are laid out one per region in fixed region order.
func regionForElite8Index(index int) models.Region {
	return models.RegionOrder[index%len(models.RegionOrder)]
}

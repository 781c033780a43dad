package models

import "strings"

// Region identifies one of the four fixed tournament regions.
type Region string

const (
	RegionEast    Region = "east"
	RegionWest    Region = "west"
	RegionMidwest Region = "midwest"
	RegionSouth   Region = "south"
)

// RegionOrder is the fixed iteration order for regions. Round-of-64 matchups
// and Elite Eight slots are laid out in this order.
var RegionOrder = []Region{RegionEast, RegionWest, RegionMidwest, RegionSouth}

// SeedsPerRegion is the number of seeded slots each region carries.
const SeedsPerRegion = 16

// Team represents a tournament team within a region. Identity is by name.
type Team struct {
	Name string `bson:"name" json:"name"`
	Seed int    `bson:"seed" json:"seed"`
}

// TeamAssignment maps each region to its 16 seed-ordered team slots
// (index 0 = seed 1, index 15 = seed 16). A slot with an empty name is unset.
type TeamAssignment map[Region][]Team

// EmptyTeams returns a team assignment with all four regions populated by
// 16 unnamed slots each, seeded 1 through 16.
func EmptyTeams() TeamAssignment {
	assignment := make(TeamAssignment, len(RegionOrder))
	for _, region := range RegionOrder {
		slots := make([]Team, SeedsPerRegion)
		for i := range slots {
			slots[i] = Team{Name: "", Seed: i + 1}
		}
		assignment[region] = slots
	}
	return assignment
}

// TeamNamesEqual reports whether two team names refer to the same team.
// Comparison is trimmed and case-insensitive, and is the single equality rule
// used by propagation and scoring alike. Two empty names are never equal.
func TeamNamesEqual(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// This file holds the dataset written on a store's first-ever open.
package records

import (
	"time"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// defaultSeed is the dataset written when no blob exists yet.
var defaultSeed = []types.Achievement{
	{
		ID:          1,
		Title:       "Awakening Protocol Initiated",
		Description: "Activated at the Shintaro Mountain Cybernetics Lab, systems fully online.",
		Category:    types.CategoryPersonal,
		Date:        types.NewDate(2018, time.August, 15),
	},
	{
		ID:          2,
		Title:       "Formed the Alliance of Two",
		Description: "Forged a protocol bond with Pixal, the Samurai X, merging our destinies.",
		Category:    types.CategoryPersonal,
		Date:        types.NewDate(2019, time.July, 22),
	},
	{
		ID:          3,
		Title:       "Mastered the Elemental Code",
		Description: "Unlocked the ability to channel elemental ice through pure digital logic.",
		Category:    types.CategoryCareer,
		Date:        types.NewDate(2019, time.September, 1),
	},
	{
		ID:          4,
		Title:       "First Field Deployment",
		Description: "Successfully neutralized the Digital Overlord virus in my first solo mission.",
		Category:    types.CategoryCareer,
		Date:        types.NewDate(2020, time.March, 10),
	},
	{
		ID:          5,
		Title:       "The Legacy Protocol",
		Description: `Initiated the "Echo Zane" project, creating a successor AI to carry on the mission.`,
		Category:    types.CategoryPersonal,
		Date:        types.NewDate(2023, time.May, 20),
	},
	{
		ID:          6,
		Title:       "Inducted into S5 Tech",
		Description: "Joined the elite cyber-defense force, Sector 5, as a Field Operative.",
		Category:    types.CategoryCareer,
		Date:        types.NewDate(2025, time.September, 21),
	},
}

// DefaultSeed returns a copy of the first-run dataset.
func DefaultSeed() []types.Achievement {
	return append([]types.Achievement(nil), defaultSeed...)
}

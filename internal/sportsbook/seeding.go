package sportsbook

import (
	"crypto/sha256"
	"fmt"

	"go-sportsbook/internal/fixedpoint"
)

// seedTier holds the favourite/underdog/draw percentages of SeedPerMatch
// for one strength-difference bracket (spec.md §4.2).
type seedTier struct {
	diffAbove uint64
	favorite  uint64
	underdog  uint64
	draw      uint64
}

// seedTiers is ordered from the most lopsided bracket to the most balanced;
// the first bracket whose diffAbove the observed diff exceeds wins.
var seedTiers = []seedTier{
	{78, 63, 16, 21},
	{65, 52, 19, 29},
	{50, 46, 23, 31},
	{35, 42, 27, 31},
	{20, 38, 31, 31},
	{8, 36, 33, 31},
}

const balancedFavorite, balancedUnderdog, balancedDraw = 34, 34, 32

// CalculatePseudoRandomSeeds derives the deterministic (home, away, draw)
// seed split for a match from its team IDs and round ID. Pure function of
// its inputs (P10).
func CalculatePseudoRandomSeeds(homeTeamID, awayTeamID, roundID uint64) (home, away, draw uint64) {
	digest := sha256.Sum256([]byte(fmt.Sprintf("%d-%d-%d", homeTeamID, awayTeamID, roundID)))

	homeStrength := uint64(digest[0]) % 100
	awayStrength := uint64(digest[1]) % 100
	drawFactor := uint64(digest[2]) % 100

	var diff uint64
	if homeStrength > awayStrength {
		diff = homeStrength - awayStrength
	} else {
		diff = awayStrength - homeStrength
	}

	favoriteAlloc, underdogAlloc, drawAlloc := balancedFavorite, balancedUnderdog, balancedDraw
	for _, t := range seedTiers {
		if diff > t.diffAbove {
			favoriteAlloc, underdogAlloc, drawAlloc = int(t.favorite), int(t.underdog), int(t.draw)
			break
		}
	}

	total := SeedPerMatch
	if homeStrength >= awayStrength {
		// Ties go to home (spec.md §4.2 step 3).
		home = (total * uint64(favoriteAlloc)) / 100
		away = (total * uint64(underdogAlloc)) / 100
	} else {
		home = (total * uint64(underdogAlloc)) / 100
		away = (total * uint64(favoriteAlloc)) / 100
	}
	draw = (total * uint64(drawAlloc)) / 100

	if drawFactor > 80 {
		drawBoost := (total * 16) / 100
		draw = fixedpoint.SaturatingAdd(draw, drawBoost)
		half := drawBoost / 2
		home = fixedpoint.SaturatingSub(home, half)
		away = fixedpoint.SaturatingSub(away, half)
	}

	return home, away, draw
}

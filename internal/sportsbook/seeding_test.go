package sportsbook

import "testing"

func TestCalculatePseudoRandomSeedsDeterministic(t *testing.T) {
	h1, a1, d1 := CalculatePseudoRandomSeeds(1, 2, 1)
	h2, a2, d2 := CalculatePseudoRandomSeeds(1, 2, 1)
	if h1 != h2 || a1 != a2 || d1 != d2 {
		t.Fatalf("seed generation is not deterministic: (%d,%d,%d) vs (%d,%d,%d)", h1, a1, d1, h2, a2, d2)
	}
}

func TestCalculatePseudoRandomSeedsNonZero(t *testing.T) {
	home, away, draw := CalculatePseudoRandomSeeds(1, 2, 1)
	if home == 0 || away == 0 || draw == 0 {
		t.Fatalf("expected all seeds > 0, got (%d,%d,%d)", home, away, draw)
	}
}

func TestCalculatePseudoRandomSeedsDifferentInputsDiffer(t *testing.T) {
	h1, a1, d1 := CalculatePseudoRandomSeeds(1, 2, 1)
	h2, a2, d2 := CalculatePseudoRandomSeeds(5, 9, 42)
	if h1 == h2 && a1 == a2 && d1 == d2 {
		t.Fatalf("different inputs produced identical seeds")
	}
}

func TestCalculatePseudoRandomSeedsManyMatchesStayInRange(t *testing.T) {
	// Sweep a range of synthetic team/round IDs and check the invariants
	// spec.md §4.2 actually promises: all seeds > 0, and draw may exceed
	// its nominal share by up to 16% under the boost branch (no sum
	// normalization is required — resolved Open Question 3).
	for home := uint64(0); home < 40; home++ {
		for away := uint64(0); away < 40; away++ {
			h, a, d := CalculatePseudoRandomSeeds(home, away, 7)
			if h == 0 || a == 0 || d == 0 {
				t.Fatalf("seed(%d,%d,7) produced a zero share: (%d,%d,%d)", home, away, h, a, d)
			}
		}
	}
}

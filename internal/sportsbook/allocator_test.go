package sportsbook

import "testing"

func TestCalculateOddsWeightedAllocationsSingleBetHomeWin(t *testing.T) {
	legs := []AllocationInput{{MatchIndex: 0, Outcome: OutcomeHome, Odds: 1_500_000_000}}
	allocations, total, err := CalculateOddsWeightedAllocations(legs, 1_000_000_000, Scale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// base_payout = 1e9 * 1.5e9 / 1e9 = 1.5e9; target = 1.5e9 (1.0x multiplier);
	// per_leg = 1.5e9; alloc = 1.5e9 * 1e9 / 1.5e9 = 1e9.
	if len(allocations) != 1 || allocations[0] != 1_000_000_000 {
		t.Errorf("allocations = %v, want [1e9]", allocations)
	}
	if total != 1_000_000_000 {
		t.Errorf("total = %d, want 1e9", total)
	}
}

func TestCalculateOddsWeightedAllocationsTwoLegParlay(t *testing.T) {
	// Odds home=1.5x, away=2.0x, amount_after_fee = 1.7e9, multiplier 1.05x
	// (mirrors spec.md §8 scenario 2).
	legs := []AllocationInput{
		{MatchIndex: 0, Outcome: OutcomeHome, Odds: 1_500_000_000},
		{MatchIndex: 1, Outcome: OutcomeAway, Odds: 2_000_000_000},
	}
	amountAfterFee := uint64(1_700_000_000)
	multiplier := uint64(1_050_000_000)

	allocations, total, err := CalculateOddsWeightedAllocations(legs, amountAfterFee, multiplier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}

	// base_payout = 1.7e9 * 1.5 * 2.0 = 5.1e9; target = 5.1e9 * 1.05 = 5.355e9
	// per_leg = 5.355e9 / 2 = 2.6775e9 (truncated to 2_677_500_000)
	// alloc_home = per_leg * 1e9 / 1.5e9; alloc_away = per_leg * 1e9 / 2.0e9
	// Verify each leg pays out exactly per_leg when it wins.
	perLeg := uint64(2_677_500_000)
	for i, leg := range legs {
		payout := allocations[i] * leg.Odds / Scale
		if payout != perLeg {
			t.Errorf("leg %d payout = %d, want %d", i, payout, perLeg)
		}
	}
	_ = total
}

func TestCalculateOddsWeightedAllocationsConsistency(t *testing.T) {
	// P3: sum(alloc_i * odds_i)/SCALE == target_payout, within L base units.
	legs := []AllocationInput{
		{MatchIndex: 0, Outcome: OutcomeHome, Odds: 1_400_000_000},
		{MatchIndex: 1, Outcome: OutcomeAway, Odds: 1_900_000_000},
		{MatchIndex: 2, Outcome: OutcomeDraw, Odds: 1_600_000_000},
	}
	amountAfterFee := uint64(3_000_000_000)
	multiplier := uint64(1_100_000_000)

	allocations, _, err := CalculateOddsWeightedAllocations(legs, amountAfterFee, multiplier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	basePayout := amountAfterFee
	for _, leg := range legs {
		basePayout = basePayout * leg.Odds / Scale
	}
	targetPayout := basePayout * multiplier / Scale

	var sumPayout uint64
	for i, leg := range legs {
		sumPayout += allocations[i] * leg.Odds / Scale
	}

	var diff uint64
	if sumPayout > targetPayout {
		diff = sumPayout - targetPayout
	} else {
		diff = targetPayout - sumPayout
	}
	if diff > uint64(len(legs)) {
		t.Errorf("allocation consistency violated: sum=%d target=%d diff=%d", sumPayout, targetPayout, diff)
	}
}

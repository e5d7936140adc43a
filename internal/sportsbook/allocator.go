package sportsbook

import "go-sportsbook/internal/fixedpoint"

// AllocationInput is one leg of a bet being allocated: which match, which
// outcome, and its locked odds.
type AllocationInput struct {
	MatchIndex uint8
	Outcome    MatchOutcome
	Odds       uint64
}

// CalculateOddsWeightedAllocations implements C5: it sizes each leg's stake
// so that every leg independently yields the same target payout, enabling
// O(M) settlement (spec.md §4.5). Returns the per-leg allocations and their
// sum.
func CalculateOddsWeightedAllocations(legs []AllocationInput, amountAfterFee, parlayMultiplier uint64) ([]uint64, uint64, error) {
	basePayout := amountAfterFee
	for _, leg := range legs {
		next, err := fixedpoint.MulDiv(basePayout, leg.Odds, Scale)
		if err != nil {
			return nil, 0, ErrCalculationOverflow
		}
		basePayout = next
	}

	targetPayout, err := fixedpoint.MulDiv(basePayout, parlayMultiplier, Scale)
	if err != nil {
		return nil, 0, ErrCalculationOverflow
	}

	perLeg := targetPayout / uint64(len(legs))

	allocations := make([]uint64, len(legs))
	var totalAllocated uint64
	for i, leg := range legs {
		alloc, err := fixedpoint.MulDiv(perLeg, Scale, leg.Odds)
		if err != nil {
			return nil, 0, ErrCalculationOverflow
		}
		allocations[i] = alloc
		totalAllocated = fixedpoint.SaturatingAdd(totalAllocated, alloc)
	}

	return allocations, totalAllocated, nil
}

package sportsbook

import "go-sportsbook/internal/fixedpoint"

// PlaceBetInput is the validated request to place a single or parlay bet.
type PlaceBetInput struct {
	RoundID      uint64
	Bettor       string
	MatchIndices []uint8
	Outcomes     []MatchOutcome
	Amount       uint64
}

// ValidatePlaceBet enforces spec.md §4.7's placement-time validation, before
// any state mutation or fee computation.
func ValidatePlaceBet(in PlaceBetInput) error {
	if len(in.MatchIndices) != len(in.Outcomes) {
		return ErrArrayLengthMismatch
	}
	if len(in.MatchIndices) == 0 || len(in.MatchIndices) > MatchesPerRound {
		return ErrInvalidBetCount
	}
	for i, idx := range in.MatchIndices {
		if int(idx) >= MatchesPerRound {
			return ErrInvalidMatchIndex
		}
		if !in.Outcomes[i].Valid() {
			return ErrInvalidOutcome
		}
	}
	if in.Amount == 0 {
		return ErrInvalidAmount
	}
	if in.Amount > MaxBetAmount {
		return ErrBetExceedsMaximum
	}
	return nil
}

// CalculateBetPayout determines whether a settled bet won, and its payout.
// All legs must match the round's recorded results for the bet to win
// (all-or-nothing parlay semantics). On a loss, returns (false, 0, 0) — not
// an error (spec.md §7: losing claims are not errors).
func CalculateBetPayout(bet *Bet, round *Round) (won bool, basePayout, finalPayout uint64, err error) {
	var totalBasePayout uint64
	for _, pred := range bet.Predictions {
		result := round.Results[pred.MatchIndex]
		if result != pred.PredictedOutcome {
			return false, 0, 0, nil
		}

		odds := &round.LockedOdds[pred.MatchIndex]
		if !odds.Locked {
			return false, 0, 0, ErrOddsNotLocked
		}

		matchPayout, mErr := fixedpoint.MulDiv(pred.AmountInPool, odds.Odds(pred.PredictedOutcome), Scale)
		if mErr != nil {
			return false, 0, 0, ErrCalculationOverflow
		}
		totalBasePayout = fixedpoint.SaturatingAdd(totalBasePayout, matchPayout)
	}

	totalFinalPayout, mErr := fixedpoint.MulDiv(totalBasePayout, bet.LockedMultiplier, Scale)
	if mErr != nil {
		return false, 0, 0, ErrCalculationOverflow
	}

	if totalFinalPayout > MaxPayoutPerBet {
		totalFinalPayout = MaxPayoutPerBet
	}

	return true, totalBasePayout, totalFinalPayout, nil
}

// ClaimResult describes the outcome of a claim_winnings call.
type ClaimResult struct {
	Won           bool
	FinalPayout   uint64
	BettorShare   uint64
	BountyShare   uint64
	IsBountyClaim bool
}

// ClaimWinnings implements C7's claim(bet_id, min_payout). It applies the
// effects itself (marks the bet claimed and settled, records a bounty
// claimer, and adds the payout to round.TotalPaidOut); the caller invokes
// the Treasury transfer afterwards, using the shares in the returned result.
func ClaimWinnings(bet *Bet, round *Round, claimer string, minPayout uint64, now int64) (ClaimResult, error) {
	if round.Status < StatusSettled {
		return ClaimResult{}, ErrRoundNotSettled
	}
	if bet.Claimed {
		return ClaimResult{}, ErrBetAlreadyClaimed
	}

	claimDeadline := round.RoundEndTime + ClaimGraceSeconds
	if bet.ClaimDeadline == 0 {
		bet.ClaimDeadline = claimDeadline
	}

	isBettor := claimer == bet.Bettor
	isBountyClaim := now > bet.ClaimDeadline && !isBettor

	if now <= bet.ClaimDeadline && !isBettor {
		return ClaimResult{}, ErrNotBettor
	}

	won, _, finalPayout, err := CalculateBetPayout(bet, round)
	if err != nil {
		return ClaimResult{}, err
	}

	if finalPayout < minPayout {
		return ClaimResult{}, ErrPayoutBelowMinimum
	}

	result := ClaimResult{Won: won, FinalPayout: finalPayout, IsBountyClaim: isBountyClaim}

	if !won || finalPayout == 0 {
		bet.Claimed = true
		bet.Settled = true
		return result, nil
	}

	if round.TotalPaidOut+finalPayout > MaxRoundPayouts {
		return ClaimResult{}, ErrRoundPayoutLimitReached
	}

	bettorShare, bountyShare := finalPayout, uint64(0)
	if isBountyClaim {
		bounty, bErr := fixedpoint.ApplyBps(finalPayout, BountyBps)
		if bErr != nil {
			return ClaimResult{}, ErrCalculationOverflow
		}
		bountyShare = bounty
		bettorShare = fixedpoint.SaturatingSub(finalPayout, bounty)
		bet.BountyClaimer = claimer
	}

	result.BettorShare = bettorShare
	result.BountyShare = bountyShare

	bet.Claimed = true
	bet.Settled = true
	round.TotalPaidOut += finalPayout

	return result, nil
}

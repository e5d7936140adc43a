package sportsbook

import "go-sportsbook/internal/fixedpoint"

// FinalizeRoundRevenue implements C8's finalize_revenue(round_id). With
// multi-match parlays the total owed to winners can't be recomputed without
// iterating every bet, so finalisation is time-gated instead: it may only run
// once the 24h claim window plus a buffer has fully elapsed, by which point
// any unclaimed winnings are treated as protocol profit. remainingBalance is
// the treasury identity's whole on-hand balance (authoritative over any
// accounting estimate, and not split per round), obtained from the caller's
// Treasury collaborator.
func FinalizeRoundRevenue(round *Round, pool *BettingPool, remainingBalance uint64, now int64) error {
	if round.Status < StatusSettled {
		return ErrRoundNotSettled
	}
	if round.RevenueDistributed {
		return ErrRevenueAlreadyDistributed
	}

	earliestFinalize := round.RoundEndTime + ClaimGraceSeconds + FinalizeBufferSeconds
	if now < earliestFinalize {
		return ErrRevenueDistributedBeforeClaims
	}

	var seasonShare uint64
	if round.TotalUserDeposits > 0 {
		totalUserBetsBeforeFee := fixedpoint.SaturatingAdd(round.TotalUserDeposits, round.ProtocolFeeCollected)

		share, err := fixedpoint.ApplyBps(totalUserBetsBeforeFee, pool.SeasonPoolShareBps)
		if err != nil {
			return ErrCalculationOverflow
		}
		seasonShare = share

		if seasonShare > remainingBalance {
			seasonShare = remainingBalance
		}
		if seasonShare > 0 {
			pool.SeasonRewardPool = fixedpoint.SaturatingAdd(pool.SeasonRewardPool, seasonShare)
		}
	}

	// operating_profit = user_deposits - total_paid_out, which can go
	// negative (the protocol dipping into its seed capital); a loss is
	// stored as zero rather than signed, matching the original source.
	var protocolRevenue uint64
	if round.TotalUserDeposits > round.TotalPaidOut {
		protocolRevenue = round.TotalUserDeposits - round.TotalPaidOut
	}

	round.ProtocolRevenueShare = protocolRevenue
	round.SeasonRevenueShare = seasonShare
	round.RevenueDistributed = true
	round.Status = StatusFinalised

	return nil
}

package sportsbook

import "go-sportsbook/internal/fixedpoint"

// NewRound implements C6's initialize_round(round_id): a fresh round with
// empty pools, unlocked odds, and StatusInit. The caller is responsible for
// sequential round_id assignment (betting_pool.next_round_id).
func NewRound(roundID uint64, now int64) *Round {
	return &Round{
		RoundID:        roundID,
		Status:         StatusInit,
		RoundStartTime: now,
	}
}

// MatchSeed is one match's team identity, used to derive its pseudo-random
// seed pools. The operator supplies team IDs; spec.md §4.2 does not mandate
// where they come from.
type MatchSeed struct {
	HomeTeamID uint64
	AwayTeamID uint64
}

// SeedRound implements C6's seed_round(round_id): it seeds all
// MatchesPerRound pools from deterministic pseudo-random shares and locks
// the opening odds from those shares, transitioning Init -> Seeded.
func SeedRound(round *Round, seeds [MatchesPerRound]MatchSeed) error {
	if round.Status != StatusInit {
		return ErrRoundAlreadySeeded
	}

	var totalSeedAmount uint64
	for i := 0; i < MatchesPerRound; i++ {
		home, away, draw := CalculatePseudoRandomSeeds(seeds[i].HomeTeamID, seeds[i].AwayTeamID, round.RoundID)

		pool := &round.MatchPools[i]
		pool.Home = home
		pool.Away = away
		pool.Draw = draw
		pool.Total = home + away + draw

		totalSeedAmount = fixedpoint.SaturatingAdd(totalSeedAmount, pool.Total)
		round.TotalBetVolume = fixedpoint.SaturatingAdd(round.TotalBetVolume, pool.Total)

		locked := CalculateLockedOddsFromSeeds(home, away, draw)
		locked.Locked = true
		round.LockedOdds[i] = locked
	}

	round.ProtocolSeedAmount = totalSeedAmount
	round.Status = StatusSeeded
	return nil
}

// SettleRound implements C6's settle_round(round_id, match_results): it
// records the final outcomes, splits each match's pool into winning/losing
// shares, and reserves the total owed to winners at locked odds, transitioning
// Seeded -> Settled.
func SettleRound(round *Round, results [MatchesPerRound]MatchOutcome, now int64) error {
	if round.Status != StatusSeeded {
		if round.Status < StatusSeeded {
			return ErrRoundNotSeeded
		}
		return ErrRoundAlreadySettled
	}

	for i, result := range results {
		if !result.Valid() {
			return ErrInvalidOutcome
		}
		round.Results[i] = result
	}

	var totalWinning, totalLosing, totalOwed uint64
	for i := 0; i < MatchesPerRound; i++ {
		result := round.Results[i]
		pool := &round.MatchPools[i]

		var winningPool, losingPool uint64
		switch result {
		case OutcomeHome:
			winningPool, losingPool = pool.Home, pool.Away+pool.Draw
		case OutcomeAway:
			winningPool, losingPool = pool.Away, pool.Home+pool.Draw
		case OutcomeDraw:
			winningPool, losingPool = pool.Draw, pool.Home+pool.Away
		}
		totalWinning = fixedpoint.SaturatingAdd(totalWinning, winningPool)
		totalLosing = fixedpoint.SaturatingAdd(totalLosing, losingPool)

		if winningPool == 0 {
			continue
		}

		odds := round.LockedOdds[i].Odds(result)
		owedForMatch, err := fixedpoint.MulDiv(winningPool, odds, Scale)
		if err != nil {
			return ErrCalculationOverflow
		}
		totalOwed = fixedpoint.SaturatingAdd(totalOwed, owedForMatch)
	}

	round.TotalWinningPool = totalWinning
	round.TotalLosingPool = totalLosing
	round.TotalReservedForWin = totalOwed
	round.Status = StatusSettled
	round.RoundEndTime = now
	return nil
}

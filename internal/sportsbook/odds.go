package sportsbook

import "go-sportsbook/internal/fixedpoint"

// CompressOdds maps raw parimutuel odds (RawOddsMin..RawOddsMax) into the
// locked-odds band (MinCompressedOdds..MaxCompressedOdds) by linear
// interpolation. Monotone in raw (P1).
func CompressOdds(raw uint64) uint64 {
	if raw < RawOddsMin {
		return MinCompressedOdds
	}
	if raw > RawOddsMax {
		return MaxCompressedOdds
	}

	excess := raw - RawOddsMin
	rawRange := RawOddsMax - RawOddsMin
	targetRange := MaxCompressedOdds - MinCompressedOdds

	scaledExcess, err := fixedpoint.MulDiv(excess, targetRange, rawRange)
	if err != nil {
		return MinCompressedOdds
	}
	return MinCompressedOdds + scaledExcess
}

// CalculateLockedOddsFromSeeds derives the three locked odds for a match
// from its seeded pools. Called exactly once, at seeding.
func CalculateLockedOddsFromSeeds(homeSeed, awaySeed, drawSeed uint64) LockedOdds {
	total := homeSeed + awaySeed + drawSeed
	if total == 0 {
		return LockedOdds{Home: 1_500_000_000, Away: 1_500_000_000, Draw: 1_500_000_000}
	}

	rawOdds := func(pool uint64) uint64 {
		if pool == 0 {
			return Scale
		}
		odds, err := fixedpoint.MulDiv(total, Scale, pool)
		if err != nil {
			return Scale
		}
		return odds
	}

	return LockedOdds{
		Home: CompressOdds(rawOdds(homeSeed)),
		Away: CompressOdds(rawOdds(awaySeed)),
		Draw: CompressOdds(rawOdds(drawSeed)),
	}
}

// CalculateMarketOdds returns the virtual-liquidity-dampened preview odds
// for outcome. Informational only — settlement never calls this.
func CalculateMarketOdds(pool *MatchPool, outcome MatchOutcome) uint64 {
	winningPool := pool.Amount(outcome)
	if winningPool == 0 {
		return 3 * Scale
	}

	virtualLiquidity, err := fixedpoint.Mul(SeedPerMatch, VirtualLiquidityMultiplier)
	if err != nil {
		virtualLiquidity = ^uint64(0)
	}

	virtualWinningPool := winningPool + virtualLiquidity/3
	virtualTotalPool := pool.Total + virtualLiquidity

	odds, err := fixedpoint.MulDiv(virtualTotalPool, Scale, virtualWinningPool)
	if err != nil {
		return Scale
	}
	return odds
}

// CalculatePoolImbalance returns how dominant the largest pool is, in bps.
func CalculatePoolImbalance(pool *MatchPool) uint64 {
	if pool.Total == 0 {
		return 0
	}
	maxPool := pool.Home
	if pool.Away > maxPool {
		maxPool = pool.Away
	}
	if pool.Draw > maxPool {
		maxPool = pool.Draw
	}

	bps, err := fixedpoint.MulDiv(maxPool, BPSDenominator, pool.Total)
	if err != nil {
		return 0
	}
	return bps
}

package sportsbook

import "go-sportsbook/internal/fixedpoint"

// Protocol-wide constants, bit-exact with spec.md §6.
const (
	// BPSDenominator is 100% in basis points.
	BPSDenominator = fixedpoint.BPSDenominator

	// Scale is the fixed-point denominator for odds and multipliers.
	Scale = fixedpoint.Scale

	// MatchesPerRound is the fixed size of every round.
	MatchesPerRound = 10

	// MaxBetAmount is the largest single bet accepted (10,000 tokens).
	MaxBetAmount uint64 = 10_000 * Scale

	// MaxPayoutPerBet caps any single bet's payout (100,000 tokens).
	MaxPayoutPerBet uint64 = 100_000 * Scale

	// MaxRoundPayouts caps the aggregate payout of a round (500,000 tokens).
	MaxRoundPayouts uint64 = 500_000 * Scale

	// SeedPerMatch is the nominal pool size seeded into each match.
	SeedPerMatch uint64 = 3_000 * Scale

	// MinCompressedOdds / MaxCompressedOdds bound every locked odds value.
	// Resolves spec.md's Open Question 1: the 1.20x-2.20x band the odds
	// engine's own formula and test suite target, not the stale
	// 1.25x/1.95x constants (see DESIGN.md).
	MinCompressedOdds uint64 = 1_200_000_000
	MaxCompressedOdds uint64 = 2_200_000_000

	// RawOddsMin / RawOddsMax bound the raw parimutuel odds fed into compress().
	RawOddsMin uint64 = 1_800_000_000
	RawOddsMax uint64 = 5_500_000_000

	// VirtualLiquidityMultiplier dampens the market-odds preview.
	VirtualLiquidityMultiplier uint64 = 12_000_000

	// MinImbalanceForFullBonus is the avg-imbalance gate threshold (40%).
	MinImbalanceForFullBonus uint64 = 4000

	// MinParlayMultiplier is the floor every parlay multiplier respects.
	MinParlayMultiplier uint64 = 1_100_000_000

	// Tier1Decay is the only decay tier wired in the treasury-only variant
	// (100%, no decay — see spec.md §4.4 Layer 3 and DESIGN.md).
	Tier1Decay uint64 = 10000

	// ClaimGraceSeconds is the bettor-exclusive claim window after settlement.
	ClaimGraceSeconds int64 = 86400

	// FinalizeBufferSeconds is the extra wait after the claim window before
	// finalize_round_revenue is callable.
	FinalizeBufferSeconds int64 = 3600

	// BountyBps is the bounty-hunter's cut of a late claim (10%).
	BountyBps uint64 = 1000
)

// parlayBaseMultiplier is Layer 1 of C4: base multiplier by leg count.
var parlayBaseMultiplier = [11]uint64{
	0,             // unused
	1_000_000_000, // 1 leg:  1.00x
	1_050_000_000, // 2 legs: 1.05x
	1_100_000_000, // 3 legs: 1.10x
	1_130_000_000, // 4 legs: 1.13x
	1_160_000_000, // 5 legs: 1.16x
	1_190_000_000, // 6 legs: 1.19x
	1_210_000_000, // 7 legs: 1.21x
	1_230_000_000, // 8 legs: 1.23x
	1_240_000_000, // 9 legs: 1.24x
	1_250_000_000, // 10 legs: 1.25x
}

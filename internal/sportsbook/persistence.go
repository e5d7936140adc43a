package sportsbook

import "context"

// Repository is the durable system of record for the betting pool, its
// rounds, and its bets (spec §3). Manager persists to it on every mutating
// operation and rebuilds its in-memory maps from it via LoadState, so a
// process restart loses neither a bet nor the monotonic next_bet_id /
// next_round_id counters. internal/store.Store implements this structurally;
// Manager depends only on this interface to keep the domain package free of
// any pgx import.
type Repository interface {
	SavePool(ctx context.Context, p *BettingPool) error
	LoadPool(ctx context.Context) (*BettingPool, error)

	SaveRound(ctx context.Context, r *Round) error
	LoadRound(ctx context.Context, roundID uint64) (*Round, error)

	SaveBet(ctx context.Context, b *Bet) error
	LoadBet(ctx context.Context, betID uint64) (*Bet, error)
	MarkClaimed(ctx context.Context, betID uint64, claimedBy string, claimedAt int64, finalPayout uint64) error
	BetsForRound(ctx context.Context, roundID uint64) ([]*Bet, error)
}

// RoundLocker serializes settle_round/finalize_round_revenue across
// replicas via a per-round advisory lock, and fans round-lifecycle events
// out to every replica's Hub over pub/sub. internal/cache.Service
// implements this structurally.
type RoundLocker interface {
	AcquireRoundLock(ctx context.Context, roundID uint64) (bool, error)
	ReleaseRoundLock(ctx context.Context, roundID uint64) error
	PublishEvent(ctx context.Context, payload []byte) error
}

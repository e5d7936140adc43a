// Package store persists sportsbook.BettingPool/Round/Bet state to Postgres
// via pgx, in the repository style the pack's betting pack(fayak-betsandpedestres)
// uses: a thin struct wrapping *pgxpool.Pool, one method per query, hand
// written SQL rather than an ORM.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-sportsbook/internal/sportsbook"
)

type Store struct {
	pool *pgxpool.Pool
}

// NewPool opens a connection pool against url, grounded on the pack's
// pgxpool.ParseConfig/NewWithConfig pattern.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("store: parse url: %w", err)
	}
	cfg.MinConns = 1
	cfg.MaxConns = 20
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open pool: %w", err)
	}
	return pool, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SavePool upserts the singleton betting pool configuration row.
func (s *Store) SavePool(ctx context.Context, p *sportsbook.BettingPool) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO betting_pools (id, authority, treasury_identity, protocol_fee_bps, winner_share_bps, season_pool_share_bps, next_round_id, next_bet_id, season_reward_pool)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			authority = EXCLUDED.authority,
			treasury_identity = EXCLUDED.treasury_identity,
			protocol_fee_bps = EXCLUDED.protocol_fee_bps,
			winner_share_bps = EXCLUDED.winner_share_bps,
			season_pool_share_bps = EXCLUDED.season_pool_share_bps,
			next_round_id = EXCLUDED.next_round_id,
			next_bet_id = EXCLUDED.next_bet_id,
			season_reward_pool = EXCLUDED.season_reward_pool
	`, p.Authority, p.TreasuryIdentity, p.ProtocolFeeBps, p.WinnerShareBps, p.SeasonPoolShareBps, p.NextRoundID, p.NextBetID, p.SeasonRewardPool)
	if err != nil {
		return fmt.Errorf("store: save pool: %w", err)
	}
	return nil
}

// LoadPool reads the singleton betting pool row. Returns sportsbook.ErrNotFound
// if the pool has never been saved.
func (s *Store) LoadPool(ctx context.Context) (*sportsbook.BettingPool, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT authority, treasury_identity, protocol_fee_bps, winner_share_bps, season_pool_share_bps, next_round_id, next_bet_id, season_reward_pool
		FROM betting_pools WHERE id = 1
	`)
	p := &sportsbook.BettingPool{}
	if err := row.Scan(&p.Authority, &p.TreasuryIdentity, &p.ProtocolFeeBps, &p.WinnerShareBps, &p.SeasonPoolShareBps, &p.NextRoundID, &p.NextBetID, &p.SeasonRewardPool); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sportsbook.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

type roundRow struct {
	MatchPools [sportsbook.MatchesPerRound]sportsbook.MatchPool
	LockedOdds [sportsbook.MatchesPerRound]sportsbook.LockedOdds
	Results    [sportsbook.MatchesPerRound]sportsbook.MatchOutcome
}

// SaveRound upserts a round, JSON-encoding its fixed-size arrays into the
// match_pools/locked_odds/results JSONB columns.
func (s *Store) SaveRound(ctx context.Context, r *sportsbook.Round) error {
	row := roundRow{MatchPools: r.MatchPools, LockedOdds: r.LockedOdds, Results: r.Results}

	pools, err := json.Marshal(row.MatchPools)
	if err != nil {
		return fmt.Errorf("store: marshal match pools: %w", err)
	}
	odds, err := json.Marshal(row.LockedOdds)
	if err != nil {
		return fmt.Errorf("store: marshal locked odds: %w", err)
	}
	results, err := json.Marshal(row.Results)
	if err != nil {
		return fmt.Errorf("store: marshal results: %w", err)
	}

	var vrfRequestID *string
	var vrfRequestedAt, vrfFulfilledAt *int64
	var vrfRandomness []byte
	if r.Vrf != nil {
		vrfRequestID = &r.Vrf.RequestID
		vrfRequestedAt = &r.Vrf.RequestedAt
		if r.Vrf.Fulfilled {
			vrfFulfilledAt = &r.Vrf.FulfilledAt
			randomness := r.Vrf.Randomness
			vrfRandomness = randomness[:]
		}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO rounds (
			round_id, status, round_start_time, round_end_time,
			match_pools, locked_odds, results,
			vrf_request_id, vrf_requested_at, vrf_fulfilled_at, vrf_randomness,
			protocol_seed_amount, total_winning_pool, total_losing_pool, total_reserved_for_win,
			total_user_deposits, total_bet_volume, total_paid_out, protocol_fee_collected, parlay_count,
			revenue_distributed, protocol_revenue_share, season_revenue_share
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (round_id) DO UPDATE SET
			status = EXCLUDED.status,
			round_end_time = EXCLUDED.round_end_time,
			match_pools = EXCLUDED.match_pools,
			locked_odds = EXCLUDED.locked_odds,
			results = EXCLUDED.results,
			vrf_request_id = EXCLUDED.vrf_request_id,
			vrf_requested_at = EXCLUDED.vrf_requested_at,
			vrf_fulfilled_at = EXCLUDED.vrf_fulfilled_at,
			vrf_randomness = EXCLUDED.vrf_randomness,
			protocol_seed_amount = EXCLUDED.protocol_seed_amount,
			total_winning_pool = EXCLUDED.total_winning_pool,
			total_losing_pool = EXCLUDED.total_losing_pool,
			total_reserved_for_win = EXCLUDED.total_reserved_for_win,
			total_user_deposits = EXCLUDED.total_user_deposits,
			total_bet_volume = EXCLUDED.total_bet_volume,
			total_paid_out = EXCLUDED.total_paid_out,
			protocol_fee_collected = EXCLUDED.protocol_fee_collected,
			parlay_count = EXCLUDED.parlay_count,
			revenue_distributed = EXCLUDED.revenue_distributed,
			protocol_revenue_share = EXCLUDED.protocol_revenue_share,
			season_revenue_share = EXCLUDED.season_revenue_share
	`,
		r.RoundID, r.Status, r.RoundStartTime, nullableInt64(r.RoundEndTime),
		pools, odds, results,
		vrfRequestID, vrfRequestedAt, vrfFulfilledAt, vrfRandomness,
		r.ProtocolSeedAmount, r.TotalWinningPool, r.TotalLosingPool, r.TotalReservedForWin,
		r.TotalUserDeposits, r.TotalBetVolume, r.TotalPaidOut, r.ProtocolFeeCollected, r.ParlayCount,
		r.RevenueDistributed, r.ProtocolRevenueShare, r.SeasonRevenueShare,
	)
	if err != nil {
		return fmt.Errorf("store: save round: %w", err)
	}
	return nil
}

// LoadRound reads a round back by id, returning sportsbook.ErrNotFound if unknown.
func (s *Store) LoadRound(ctx context.Context, roundID uint64) (*sportsbook.Round, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT status, round_start_time, round_end_time,
			match_pools, locked_odds, results,
			vrf_request_id, vrf_requested_at, vrf_fulfilled_at, vrf_randomness,
			protocol_seed_amount, total_winning_pool, total_losing_pool, total_reserved_for_win,
			total_user_deposits, total_bet_volume, total_paid_out, protocol_fee_collected, parlay_count,
			revenue_distributed, protocol_revenue_share, season_revenue_share
		FROM rounds WHERE round_id = $1
	`, roundID)

	r := &sportsbook.Round{RoundID: roundID}
	var roundEndTime *int64
	var poolsJSON, oddsJSON, resultsJSON []byte
	var vrfRequestID *string
	var vrfRequestedAt, vrfFulfilledAt *int64
	var vrfRandomness []byte

	if err := row.Scan(
		&r.Status, &r.RoundStartTime, &roundEndTime,
		&poolsJSON, &oddsJSON, &resultsJSON,
		&vrfRequestID, &vrfRequestedAt, &vrfFulfilledAt, &vrfRandomness,
		&r.ProtocolSeedAmount, &r.TotalWinningPool, &r.TotalLosingPool, &r.TotalReservedForWin,
		&r.TotalUserDeposits, &r.TotalBetVolume, &r.TotalPaidOut, &r.ProtocolFeeCollected, &r.ParlayCount,
		&r.RevenueDistributed, &r.ProtocolRevenueShare, &r.SeasonRevenueShare,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sportsbook.ErrNotFound
		}
		return nil, err
	}
	if roundEndTime != nil {
		r.RoundEndTime = *roundEndTime
	}
	if err := json.Unmarshal(poolsJSON, &r.MatchPools); err != nil {
		return nil, fmt.Errorf("store: unmarshal match pools: %w", err)
	}
	if err := json.Unmarshal(oddsJSON, &r.LockedOdds); err != nil {
		return nil, fmt.Errorf("store: unmarshal locked odds: %w", err)
	}
	if err := json.Unmarshal(resultsJSON, &r.Results); err != nil {
		return nil, fmt.Errorf("store: unmarshal results: %w", err)
	}
	if vrfRequestID != nil {
		vrf := &sportsbook.VrfRecord{RoundID: roundID, RequestID: *vrfRequestID}
		if vrfRequestedAt != nil {
			vrf.RequestedAt = *vrfRequestedAt
		}
		if vrfFulfilledAt != nil {
			vrf.Fulfilled = true
			vrf.FulfilledAt = *vrfFulfilledAt
			copy(vrf.Randomness[:], vrfRandomness)
		}
		r.Vrf = vrf
	}
	return r, nil
}

// SaveBet inserts a newly placed bet. Bets are append-only until claimed.
func (s *Store) SaveBet(ctx context.Context, b *sportsbook.Bet) error {
	predictions, err := json.Marshal(b.Predictions)
	if err != nil {
		return fmt.Errorf("store: marshal predictions: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO bets (bet_id, round_id, bettor, amount, amount_after_fee, allocated_amount, locked_multiplier, predictions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, b.BetID, b.RoundID, b.Bettor, b.Amount, b.AmountAfterFee, b.AllocatedAmount, b.LockedMultiplier, predictions)
	if err != nil {
		return fmt.Errorf("store: save bet: %w", err)
	}
	return nil
}

// MarkClaimed records a bet's terminal claim outcome.
func (s *Store) MarkClaimed(ctx context.Context, betID uint64, claimedBy string, claimedAt int64, finalPayout uint64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE bets SET claimed = true, claimed_by = $2, claimed_at = $3, final_payout = $4
		WHERE bet_id = $1
	`, betID, claimedBy, claimedAt, finalPayout)
	if err != nil {
		return fmt.Errorf("store: mark claimed: %w", err)
	}
	return nil
}

// LoadBet reads a bet back by id, returning sportsbook.ErrNotFound if unknown.
func (s *Store) LoadBet(ctx context.Context, betID uint64) (*sportsbook.Bet, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT round_id, bettor, amount, amount_after_fee, allocated_amount, locked_multiplier, predictions, claimed
		FROM bets WHERE bet_id = $1
	`, betID)

	b := &sportsbook.Bet{BetID: betID}
	var predictionsJSON []byte
	if err := row.Scan(&b.RoundID, &b.Bettor, &b.Amount, &b.AmountAfterFee, &b.AllocatedAmount, &b.LockedMultiplier, &predictionsJSON, &b.Claimed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sportsbook.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(predictionsJSON, &b.Predictions); err != nil {
		return nil, fmt.Errorf("store: unmarshal predictions: %w", err)
	}
	return b, nil
}

// BetsForRound lists every bet placed against a round, used to rebuild a
// Manager's in-memory state after a restart.
func (s *Store) BetsForRound(ctx context.Context, roundID uint64) ([]*sportsbook.Bet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT bet_id, bettor, amount, amount_after_fee, allocated_amount, locked_multiplier, predictions, claimed
		FROM bets WHERE round_id = $1 ORDER BY bet_id
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("store: query bets for round: %w", err)
	}
	defer rows.Close()

	var bets []*sportsbook.Bet
	for rows.Next() {
		b := &sportsbook.Bet{RoundID: roundID}
		var predictionsJSON []byte
		if err := rows.Scan(&b.BetID, &b.Bettor, &b.Amount, &b.AmountAfterFee, &b.AllocatedAmount, &b.LockedMultiplier, &predictionsJSON, &b.Claimed); err != nil {
			return nil, fmt.Errorf("store: scan bet row: %w", err)
		}
		if err := json.Unmarshal(predictionsJSON, &b.Predictions); err != nil {
			return nil, fmt.Errorf("store: unmarshal predictions: %w", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bets, nil
}

func nullableInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

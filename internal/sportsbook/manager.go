package sportsbook

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go-sportsbook/internal/fixedpoint"

	"go.uber.org/zap"
)

// Manager is the orchestrator for the settlement engine: it holds the
// singleton BettingPool configuration, every round it has ever initialised,
// and the bets placed against them, behind a single mutex. Grounded on the
// teacher's game.Manager (shared state behind a mutex, one method per
// externally-invocable operation), but trades its ticking crash-game loop
// for the operator/bettor RPC surface of spec.md §6: settlement here is
// event-driven, not continuous. repo and locker are both optional: a nil
// repo keeps Manager in-memory-only (as in tests); a nil locker serializes
// settle/finalize only within this process and broadcasts locally instead
// of through pub/sub.
type Manager struct {
	mu       sync.Mutex
	pool     *BettingPool
	rounds   map[uint64]*Round
	bets     map[uint64]*Bet
	oracle   RandomnessOracle
	treasury Treasury
	hub      *Hub
	logger   *zap.Logger
	repo     Repository
	locker   RoundLocker
}

func NewManager(pool *BettingPool, oracle RandomnessOracle, treasury Treasury, hub *Hub, logger *zap.Logger, repo Repository, locker RoundLocker) *Manager {
	return &Manager{
		pool:     pool,
		rounds:   make(map[uint64]*Round),
		bets:     make(map[uint64]*Bet),
		oracle:   oracle,
		treasury: treasury,
		hub:      hub,
		logger:   logger,
		repo:     repo,
		locker:   locker,
	}
}

// LoadState rebuilds the in-memory rounds/bets maps from repo after a
// process restart, walking every round id below the persisted
// next_round_id. A no-op when Manager was built without a Repository.
func (m *Manager) LoadState(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pool, err := m.repo.LoadPool(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err == nil {
		m.pool = pool
	}

	for roundID := uint64(0); roundID < m.pool.NextRoundID; roundID++ {
		round, err := m.repo.LoadRound(ctx, roundID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return err
		}
		m.rounds[roundID] = round

		bets, err := m.repo.BetsForRound(ctx, roundID)
		if err != nil {
			return err
		}
		for _, bet := range bets {
			if bet.Claimed {
				bet.Settled = true
			}
			m.bets[bet.BetID] = bet
		}
	}
	return nil
}

// broadcast fans a round-lifecycle event out. With a locker wired, it
// publishes to the cross-replica channel only, so the subscriber relay
// feeding every replica's Hub (including this one) is the single path to
// connected clients; without one it falls back to broadcasting on this
// process's Hub directly.
func (m *Manager) broadcast(ctx context.Context, eventType string, roundID uint64, data interface{}) {
	event := RoundEvent{Type: eventType, RoundID: roundID, Data: data}

	if m.locker != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			m.logger.Error("[EVENT] marshal failed", zap.Error(err))
			return
		}
		if err := m.locker.PublishEvent(ctx, payload); err != nil {
			m.logger.Warn("[EVENT] publish failed", zap.Error(err))
		}
		return
	}

	if m.hub != nil {
		m.hub.Broadcast(event)
	}
}

// lockRound takes the round's advisory lock when a locker is wired,
// serializing settle_round/finalize_round_revenue across replicas.
func (m *Manager) lockRound(ctx context.Context, roundID uint64) (bool, error) {
	if m.locker == nil {
		return true, nil
	}
	return m.locker.AcquireRoundLock(ctx, roundID)
}

func (m *Manager) unlockRound(ctx context.Context, roundID uint64) {
	if m.locker == nil {
		return
	}
	if err := m.locker.ReleaseRoundLock(ctx, roundID); err != nil {
		m.logger.Warn("[LOCK] release failed", zap.Uint64("round_id", roundID), zap.Error(err))
	}
}

func (m *Manager) saveRound(ctx context.Context, round *Round) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.SaveRound(ctx, round); err != nil {
		m.logger.Error("[STORE] save round failed", zap.Uint64("round_id", round.RoundID), zap.Error(err))
		return err
	}
	return nil
}

func (m *Manager) savePool(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.SavePool(ctx, m.pool); err != nil {
		m.logger.Error("[STORE] save pool failed", zap.Error(err))
		return err
	}
	return nil
}

func (m *Manager) saveBet(ctx context.Context, bet *Bet) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.SaveBet(ctx, bet); err != nil {
		m.logger.Error("[STORE] save bet failed", zap.Uint64("bet_id", bet.BetID), zap.Error(err))
		return err
	}
	return nil
}

func (m *Manager) markClaimed(ctx context.Context, betID uint64, claimedBy string, claimedAt int64, finalPayout uint64) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.MarkClaimed(ctx, betID, claimedBy, claimedAt, finalPayout); err != nil {
		m.logger.Error("[STORE] mark claimed failed", zap.Uint64("bet_id", betID), zap.Error(err))
		return err
	}
	return nil
}

// InitializeRound implements C6's initialize_round(round_id), enforcing
// sequential round IDs off BettingPool.NextRoundID.
func (m *Manager) InitializeRound(ctx context.Context, roundID uint64, now int64) (*Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if roundID != m.pool.NextRoundID {
		return nil, ErrInvalidRoundID
	}
	m.pool.NextRoundID++

	round := NewRound(roundID, now)
	m.rounds[roundID] = round

	if err := m.saveRound(ctx, round); err != nil {
		return nil, err
	}
	if err := m.savePool(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("[ROUND] initialized", zap.Uint64("round_id", roundID))
	m.broadcast(ctx, "round_initialized", roundID, nil)
	return round, nil
}

// SeedRound implements C6's seed_round(round_id).
func (m *Manager) SeedRound(ctx context.Context, roundID uint64, seeds [MatchesPerRound]MatchSeed) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[roundID]
	if !ok {
		return ErrRoundNotFound
	}
	if err := SeedRound(round, seeds); err != nil {
		return err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return err
	}

	m.logger.Info("[ROUND] seeded", zap.Uint64("round_id", roundID), zap.Uint64("seed_amount", round.ProtocolSeedAmount))
	m.broadcast(ctx, "round_seeded", roundID, nil)
	return nil
}

// RequestVRF implements C9's request phase for a seeded round.
func (m *Manager) RequestVRF(ctx context.Context, roundID uint64, now int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[roundID]
	if !ok {
		return "", ErrRoundNotFound
	}
	if err := RequestVrf(round, m.oracle, now); err != nil {
		return "", err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return "", err
	}

	m.logger.Info("[VRF] requested", zap.Uint64("round_id", roundID), zap.String("request_id", round.Vrf.RequestID))
	return round.Vrf.RequestID, nil
}

// FulfillVRF implements C9's fulfil phase; it does not settle the round.
func (m *Manager) FulfillVRF(ctx context.Context, roundID uint64, now int64) ([MatchesPerRound]MatchOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[roundID]
	if !ok {
		return [MatchesPerRound]MatchOutcome{}, ErrRoundNotFound
	}
	results, err := FulfillVrf(round, m.oracle, now)
	if err != nil {
		return [MatchesPerRound]MatchOutcome{}, err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return [MatchesPerRound]MatchOutcome{}, err
	}

	m.logger.Info("[VRF] fulfilled", zap.Uint64("round_id", roundID))
	return results, nil
}

// SettleRound implements C6's settle_round(round_id, match_results). Takes
// the round's advisory lock first so two replicas can't settle the same
// round concurrently off stale in-memory state.
func (m *Manager) SettleRound(ctx context.Context, roundID uint64, results [MatchesPerRound]MatchOutcome, now int64) error {
	locked, err := m.lockRound(ctx, roundID)
	if err != nil {
		return err
	}
	if !locked {
		return ErrRoundLocked
	}
	defer m.unlockRound(ctx, roundID)

	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[roundID]
	if !ok {
		return ErrRoundNotFound
	}
	if err := SettleRound(round, results, now); err != nil {
		return err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return err
	}

	m.logger.Info("[ROUND] settled", zap.Uint64("round_id", roundID), zap.Uint64("reserved_for_winners", round.TotalReservedForWin))
	m.broadcast(ctx, "round_settled", roundID, results)
	return nil
}

// FinalizeRoundRevenue implements C8's finalize_revenue(round_id). Guarded
// by the same advisory lock as SettleRound since both mutate round.Status
// and the treasury.
func (m *Manager) FinalizeRoundRevenue(ctx context.Context, roundID uint64, now int64) error {
	locked, err := m.lockRound(ctx, roundID)
	if err != nil {
		return err
	}
	if !locked {
		return ErrRoundLocked
	}
	defer m.unlockRound(ctx, roundID)

	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[roundID]
	if !ok {
		return ErrRoundNotFound
	}
	balance, err := m.treasury.Balance(m.pool.TreasuryIdentity)
	if err != nil {
		return err
	}
	if err := FinalizeRoundRevenue(round, m.pool, balance, now); err != nil {
		return err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return err
	}

	m.logger.Info("[REVENUE] finalized", zap.Uint64("round_id", roundID),
		zap.Uint64("season_share", round.SeasonRevenueShare),
		zap.Uint64("protocol_share", round.ProtocolRevenueShare))
	m.broadcast(ctx, "round_finalised", roundID, nil)
	return nil
}

// PlaceBet implements C7's place_bet: validates, computes the fee and
// per-leg allocations, and debits the bettor via Treasury before persisting
// the bet and crediting the round's pools.
func (m *Manager) PlaceBet(ctx context.Context, in PlaceBetInput) (*Bet, error) {
	if err := ValidatePlaceBet(in); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	round, ok := m.rounds[in.RoundID]
	if !ok {
		return nil, ErrRoundNotFound
	}
	if !round.Seeded() || round.SettledState() {
		return nil, ErrOddsNotLocked
	}

	fee, err := fixedpoint.ApplyBps(in.Amount, m.pool.ProtocolFeeBps)
	if err != nil {
		return nil, ErrCalculationOverflow
	}
	amountAfterFee := in.Amount - fee

	legs := make([]AllocationInput, len(in.MatchIndices))
	for i, idx := range in.MatchIndices {
		legs[i] = AllocationInput{
			MatchIndex: idx,
			Outcome:    in.Outcomes[i],
			Odds:       round.LockedOdds[idx].Odds(in.Outcomes[i]),
		}
	}

	parlayMultiplier := Scale
	if len(legs) > 1 {
		indices := make([]uint8, len(legs))
		for i, leg := range legs {
			indices[i] = leg.MatchIndex
		}
		parlayMultiplier = CalculateParlayMultiplierDynamic(&round.MatchPools, indices)
	}

	// Solvency gate: the treasury must already be able to cover the worst
	// case this bet could produce before the stake is even accepted
	// (place_bet.rs's current_balance >= max_possible_payout check).
	maxPossiblePayout := CalculateMaxPayout(amountAfterFee, len(legs), parlayMultiplier)
	treasuryBalance, err := m.treasury.Balance(m.pool.TreasuryIdentity)
	if err != nil {
		return nil, err
	}
	if treasuryBalance < maxPossiblePayout {
		return nil, ErrInsufficientProtocolLiquidity
	}

	allocations, totalAllocated, err := CalculateOddsWeightedAllocations(legs, amountAfterFee, parlayMultiplier)
	if err != nil {
		return nil, err
	}

	if err := m.treasury.Transfer(in.Bettor, m.pool.TreasuryIdentity, in.Amount); err != nil {
		return nil, err
	}

	predictions := make([]Prediction, len(legs))
	for i, leg := range legs {
		predictions[i] = Prediction{MatchIndex: leg.MatchIndex, PredictedOutcome: leg.Outcome, AmountInPool: allocations[i]}
		if err := round.MatchPools[leg.MatchIndex].AddToPool(leg.Outcome, allocations[i]); err != nil {
			return nil, err
		}
	}

	betID := m.pool.NextBetID
	m.pool.NextBetID++

	bet := &Bet{
		Bettor:           in.Bettor,
		RoundID:          in.RoundID,
		BetID:            betID,
		Amount:           in.Amount,
		AmountAfterFee:   amountAfterFee,
		AllocatedAmount:  totalAllocated,
		LockedMultiplier: parlayMultiplier,
		Predictions:      predictions,
	}
	m.bets[betID] = bet

	round.TotalUserDeposits += in.Amount
	round.ProtocolFeeCollected += fee
	round.TotalBetVolume += totalAllocated
	if len(legs) > 1 {
		round.ParlayCount++
	}

	if err := m.saveBet(ctx, bet); err != nil {
		return nil, err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return nil, err
	}
	if err := m.savePool(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("[BET] placed", zap.Uint64("bet_id", betID), zap.String("bettor", in.Bettor), zap.Uint64("amount", in.Amount))
	m.broadcast(ctx, "bet_placed", in.RoundID, betID)
	return bet, nil
}

// ClaimWinnings implements C7's claim(bet_id, min_payout): checks-effects
// first (bet/round mutation via ClaimWinnings), then an explicit solvency
// check naming spec §4.7's InsufficientProtocolLiquidity before the Treasury
// transfers that would otherwise surface InMemoryTreasury's own generic
// insufficient-balance error.
func (m *Manager) ClaimWinnings(ctx context.Context, betID uint64, claimer string, minPayout uint64, now int64) (ClaimResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bet, ok := m.bets[betID]
	if !ok {
		return ClaimResult{}, ErrBetNotFound
	}
	round, ok := m.rounds[bet.RoundID]
	if !ok {
		return ClaimResult{}, ErrRoundNotFound
	}

	result, err := ClaimWinnings(bet, round, claimer, minPayout, now)
	if err != nil {
		return ClaimResult{}, err
	}

	if result.Won && result.FinalPayout > 0 {
		treasuryBalance, err := m.treasury.Balance(m.pool.TreasuryIdentity)
		if err != nil {
			return ClaimResult{}, err
		}
		if treasuryBalance < result.FinalPayout {
			return ClaimResult{}, ErrInsufficientProtocolLiquidity
		}

		if err := m.treasury.Transfer(m.pool.TreasuryIdentity, bet.Bettor, result.BettorShare); err != nil {
			return ClaimResult{}, err
		}
		if result.IsBountyClaim && result.BountyShare > 0 {
			if err := m.treasury.Transfer(m.pool.TreasuryIdentity, claimer, result.BountyShare); err != nil {
				return ClaimResult{}, err
			}
		}
	}

	if err := m.markClaimed(ctx, betID, claimer, now, result.FinalPayout); err != nil {
		return ClaimResult{}, err
	}
	if err := m.saveRound(ctx, round); err != nil {
		return ClaimResult{}, err
	}

	m.logger.Info("[CLAIM] settled", zap.Uint64("bet_id", betID), zap.String("claimer", claimer),
		zap.Bool("won", result.Won), zap.Uint64("final_payout", result.FinalPayout))
	m.broadcast(ctx, "bet_claimed", bet.RoundID, betID)
	return result, nil
}

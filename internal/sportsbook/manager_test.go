package sportsbook

import (
	"context"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, *InMemoryTreasury) {
	t.Helper()
	pool := &BettingPool{
		Authority:          "operator",
		TreasuryIdentity:   "treasury",
		ProtocolFeeBps:     200, // 2%
		WinnerShareBps:     9000,
		SeasonPoolShareBps: 200,
	}
	treasury := NewInMemoryTreasury()
	oracle := NewDevOracle()
	logger := newNoopLogger()
	m := NewManager(pool, oracle, treasury, nil, logger, nil, nil)
	return m, treasury
}

func TestManagerInitializeSeedSettleFlow(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	round, err := m.InitializeRound(ctx, 0, 1000)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if round.Status != StatusInit {
		t.Errorf("status = %v, want Init", round.Status)
	}

	if err := m.SeedRound(ctx, 0, testSeeds()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := m.RequestVRF(ctx, 0, 1100); err != nil {
		t.Fatalf("request vrf failed: %v", err)
	}
	results, err := m.FulfillVRF(ctx, 0, 1200)
	if err != nil {
		t.Fatalf("fulfil vrf failed: %v", err)
	}

	if err := m.SettleRound(ctx, 0, results, 1300); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
}

func TestManagerInitializeRejectsNonSequentialRoundID(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.InitializeRound(context.Background(), 5, 1000); err != ErrInvalidRoundID {
		t.Errorf("got %v, want ErrInvalidRoundID", err)
	}
}

func TestManagerPlaceBetAndClaim(t *testing.T) {
	m, treasury := newTestManager(t)
	ctx := context.Background()
	treasury.Credit("alice", 10_000_000_000)
	treasury.Credit("treasury", 100_000_000_000)

	if _, err := m.InitializeRound(ctx, 0, 0); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := m.SeedRound(ctx, 0, testSeeds()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	round := m.rounds[0]
	outcome := OutcomeHome

	bet, err := m.PlaceBet(ctx, PlaceBetInput{
		RoundID:      0,
		Bettor:       "alice",
		MatchIndices: []uint8{0},
		Outcomes:     []MatchOutcome{outcome},
		Amount:       1_000_000_000,
	})
	if err != nil {
		t.Fatalf("place bet failed: %v", err)
	}

	aliceBal, _ := treasury.Balance("alice")
	if aliceBal != 9_000_000_000 {
		t.Errorf("alice balance after bet = %d, want 9e9", aliceBal)
	}

	var results [MatchesPerRound]MatchOutcome
	for i := range results {
		results[i] = OutcomeHome
	}
	_ = round
	if err := m.SettleRound(ctx, 0, results, 500); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	claimResult, err := m.ClaimWinnings(ctx, bet.BetID, "alice", 0, 600)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !claimResult.Won || claimResult.FinalPayout == 0 {
		t.Errorf("expected a winning claim, got %+v", claimResult)
	}

	aliceBalAfterClaim, _ := treasury.Balance("alice")
	if aliceBalAfterClaim != 9_000_000_000+claimResult.BettorShare {
		t.Errorf("alice balance after claim = %d, want %d", aliceBalAfterClaim, 9_000_000_000+claimResult.BettorShare)
	}
}

func TestManagerPlaceBetRejectsBeforeSeeding(t *testing.T) {
	m, treasury := newTestManager(t)
	ctx := context.Background()
	treasury.Credit("alice", 10_000_000_000)

	if _, err := m.InitializeRound(ctx, 0, 0); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	_, err := m.PlaceBet(ctx, PlaceBetInput{
		RoundID:      0,
		Bettor:       "alice",
		MatchIndices: []uint8{0},
		Outcomes:     []MatchOutcome{OutcomeHome},
		Amount:       1_000_000_000,
	})
	if err != ErrOddsNotLocked {
		t.Errorf("got %v, want ErrOddsNotLocked", err)
	}
}

func TestManagerClaimRejectsUnknownBet(t *testing.T) {
	m, _ := newTestManager(t)
	if _, err := m.ClaimWinnings(context.Background(), 999, "alice", 0, 0); err != ErrBetNotFound {
		t.Errorf("got %v, want ErrBetNotFound", err)
	}
}

func TestManagerFinalizeRevenueFlow(t *testing.T) {
	m, treasury := newTestManager(t)
	ctx := context.Background()
	treasury.Credit("alice", 10_000_000_000)
	treasury.Credit("treasury", 50_000_000_000)

	if _, err := m.InitializeRound(ctx, 0, 0); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := m.SeedRound(ctx, 0, testSeeds()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var results [MatchesPerRound]MatchOutcome
	for i := range results {
		results[i] = OutcomeDraw
	}
	if err := m.SettleRound(ctx, 0, results, 1_000_000); err != nil {
		t.Fatalf("settle failed: %v", err)
	}

	now := int64(1_000_000) + ClaimGraceSeconds + FinalizeBufferSeconds
	if err := m.FinalizeRoundRevenue(ctx, 0, now); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if m.rounds[0].Status != StatusFinalised {
		t.Errorf("status = %v, want Finalised", m.rounds[0].Status)
	}
}

func TestManagerSettleRoundRejectsWhenAlreadyLocked(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	m.locker = fakeLocker{acquire: false}

	if _, err := m.InitializeRound(ctx, 0, 0); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if err := m.SeedRound(ctx, 0, testSeeds()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	var results [MatchesPerRound]MatchOutcome
	if err := m.SettleRound(ctx, 0, results, 500); err != ErrRoundLocked {
		t.Errorf("got %v, want ErrRoundLocked", err)
	}
}

type fakeLocker struct {
	acquire bool
}

func (f fakeLocker) AcquireRoundLock(ctx context.Context, roundID uint64) (bool, error) {
	return f.acquire, nil
}
func (f fakeLocker) ReleaseRoundLock(ctx context.Context, roundID uint64) error { return nil }
func (f fakeLocker) PublishEvent(ctx context.Context, payload []byte) error     { return nil }

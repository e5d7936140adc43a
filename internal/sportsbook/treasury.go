package sportsbook

import "sync"

// Treasury is the funds-movement collaborator (spec.md §6). The settlement
// engine never moves value itself: Manager.PlaceBet and
// Manager.ClaimWinnings call Transfer, and Manager.FinalizeRoundRevenue
// only reads Balance; seeding moves no funds. A claim mutates the bet and
// round before its transfers. PlaceBet debits the bettor before it mutates
// the round's pools and records the bet, so a failed debit leaves the round
// unchanged.
type Treasury interface {
	// Transfer moves amount from one identity to another. Identities are
	// opaque strings (account/bettor/treasury identifiers, per spec.md §3).
	Transfer(from, to string, amount uint64) error

	// Balance returns the current balance held for identity.
	Balance(identity string) (uint64, error)
}

// ErrInsufficientBalance is returned by InMemoryTreasury when a transfer
// would drive a balance negative.
var ErrInsufficientBalance = ErrInsufficientAvailableLiquidity

// InMemoryTreasury is a reference Treasury suitable for a single-process
// deployment and for tests; it holds balances in memory behind a mutex,
// with no wire protocol to an external ledger (spec.md §1 scopes Treasury as
// a collaborator, not a payment rail).
type InMemoryTreasury struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewInMemoryTreasury() *InMemoryTreasury {
	return &InMemoryTreasury{balances: make(map[string]uint64)}
}

// Credit adds amount to identity's balance without debiting anywhere else,
// for seeding an account (e.g. an operator funding the treasury identity).
func (t *InMemoryTreasury) Credit(identity string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[identity] += amount
}

func (t *InMemoryTreasury) Transfer(from, to string, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *InMemoryTreasury) Balance(identity string) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[identity], nil
}

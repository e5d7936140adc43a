package sportsbook

import "testing"

func TestInMemoryTreasuryCreditAndBalance(t *testing.T) {
	tr := NewInMemoryTreasury()
	tr.Credit("treasury", 1_000_000_000)

	bal, err := tr.Balance("treasury")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal != 1_000_000_000 {
		t.Errorf("balance = %d, want 1e9", bal)
	}
}

func TestInMemoryTreasuryTransfer(t *testing.T) {
	tr := NewInMemoryTreasury()
	tr.Credit("treasury", 1_000_000_000)

	if err := tr.Transfer("treasury", "alice", 400_000_000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	treasuryBal, _ := tr.Balance("treasury")
	aliceBal, _ := tr.Balance("alice")
	if treasuryBal != 600_000_000 {
		t.Errorf("treasury balance = %d, want 6e8", treasuryBal)
	}
	if aliceBal != 400_000_000 {
		t.Errorf("alice balance = %d, want 4e8", aliceBal)
	}
}

func TestInMemoryTreasuryRejectsOverdraw(t *testing.T) {
	tr := NewInMemoryTreasury()
	tr.Credit("treasury", 100)

	if err := tr.Transfer("treasury", "alice", 101); err != ErrInsufficientBalance {
		t.Errorf("got %v, want ErrInsufficientBalance", err)
	}
	bal, _ := tr.Balance("treasury")
	if bal != 100 {
		t.Errorf("failed transfer should not mutate balance, got %d", bal)
	}
}

package sportsbook

import "errors"

// Error taxonomy, grounded one-to-one on the original contract's
// SportsbookError enum (see DESIGN.md). Validation errors abort without
// mutating state; state errors abort idempotently; arithmetic errors
// indicate a bug or adversarial input.

// Validation
var (
	ErrInvalidMatchIndex    = errors.New("sportsbook: invalid match index (must be 0-9)")
	ErrInvalidOutcome       = errors.New("sportsbook: invalid outcome (must be home, away, or draw)")
	ErrArrayLengthMismatch  = errors.New("sportsbook: match indices and outcomes length mismatch")
	ErrInvalidBetCount      = errors.New("sportsbook: invalid bet count (must be 1-10)")
	ErrInvalidAmount        = errors.New("sportsbook: invalid amount (must be > 0)")
	ErrInvalidRoundID       = errors.New("sportsbook: invalid round id")
	ErrTooManyPredictions   = errors.New("sportsbook: too many predictions (max 10)")
)

// State
var (
	ErrRoundAlreadySeeded            = errors.New("sportsbook: round already seeded")
	ErrRoundNotSeeded                = errors.New("sportsbook: round not seeded yet")
	ErrRoundAlreadySettled           = errors.New("sportsbook: round already settled")
	ErrRoundNotSettled               = errors.New("sportsbook: round not settled yet")
	ErrOddsNotLocked                 = errors.New("sportsbook: odds not locked yet")
	ErrRevenueAlreadyDistributed     = errors.New("sportsbook: revenue already distributed")
	ErrRevenueDistributedBeforeClaims = errors.New("sportsbook: revenue finalisation attempted before claim window + buffer elapsed")
	ErrVrfAlreadyRequested           = errors.New("sportsbook: vrf already requested for this round")
	ErrVrfNotRequested               = errors.New("sportsbook: vrf has not been requested for this round")
	ErrVrfAlreadyFulfilled           = errors.New("sportsbook: vrf already fulfilled for this round")
	ErrRoundNotFound                 = errors.New("sportsbook: round not found")
	ErrBetNotFound                   = errors.New("sportsbook: bet not found")
)

// Authorisation
var (
	ErrInvalidAuthority = errors.New("sportsbook: invalid authority")
	ErrNotBettor        = errors.New("sportsbook: claimer is not the bettor")
)

// Risk / solvency
var (
	ErrBetExceedsMaximum             = errors.New("sportsbook: bet exceeds maximum allowed")
	ErrMaxPayoutExceeded              = errors.New("sportsbook: maximum payout exceeded")
	ErrRoundPayoutLimitReached        = errors.New("sportsbook: round payout limit reached")
	ErrInsufficientProtocolLiquidity  = errors.New("sportsbook: insufficient protocol liquidity")
	ErrInsufficientAvailableLiquidity = errors.New("sportsbook: insufficient available liquidity")
)

// Economic
var (
	ErrPayoutBelowMinimum = errors.New("sportsbook: payout below minimum (slippage protection)")
	ErrBetAlreadyClaimed  = errors.New("sportsbook: bet already claimed")
)

// Arithmetic
var (
	ErrCalculationOverflow = errors.New("sportsbook: calculation overflow")
	ErrNumericalOverflow   = errors.New("sportsbook: numerical overflow")
)

// Persistence / coordination
var (
	// ErrNotFound is returned by a Repository Load when no row exists yet.
	ErrNotFound = errors.New("sportsbook: not found in repository")
	// ErrRoundLocked means another replica already holds the round's
	// advisory lock for a settle_round/finalize_revenue call in flight.
	ErrRoundLocked = errors.New("sportsbook: round is locked by another operation")
)

package sportsbook

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"
)

// RandomnessOracle is the two-phase VRF collaborator (spec.md §6): a round's
// randomness is requested once it is seeded, and fulfilled in a separate
// call. SettleRound takes its results as an argument and does not check
// that a VRF request was fulfilled. Grounded on the Switchboard VRF request/
// fulfil split in the original source, which this engine keeps even though
// it no longer talks to an external oracle network.
type RandomnessOracle interface {
	// RequestRandomness starts a randomness request for roundID and returns
	// a correlation ID the caller stores on the round's VrfRecord.
	RequestRandomness(roundID uint64) (requestID string, err error)

	// FulfillRandomness returns the 320 bytes of randomness for a previously
	// requested ID. It may be called once; a second call for the same ID
	// returns ErrVrfAlreadyFulfilled.
	FulfillRandomness(requestID string) ([MatchesPerRound * randomnessBytesPerMatch]byte, error)
}

// DevOracle is a single-process RandomnessOracle backed by crypto/rand,
// suitable for local and single-node deployments where no external VRF
// network is wired up (spec.md §1 scopes the oracle as a collaborator, not a
// wire protocol).
type DevOracle struct {
	mu       sync.Mutex
	pending  map[string][MatchesPerRound * randomnessBytesPerMatch]byte
	consumed map[string]bool
}

func NewDevOracle() *DevOracle {
	return &DevOracle{
		pending:  make(map[string][MatchesPerRound * randomnessBytesPerMatch]byte),
		consumed: make(map[string]bool),
	}
}

func (o *DevOracle) RequestRandomness(roundID uint64) (string, error) {
	var buf [MatchesPerRound * randomnessBytesPerMatch]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}

	requestID := uuid.NewString()

	o.mu.Lock()
	o.pending[requestID] = buf
	o.mu.Unlock()

	return requestID, nil
}

func (o *DevOracle) FulfillRandomness(requestID string) ([MatchesPerRound * randomnessBytesPerMatch]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.consumed[requestID] {
		return [MatchesPerRound * randomnessBytesPerMatch]byte{}, ErrVrfAlreadyFulfilled
	}
	buf, ok := o.pending[requestID]
	if !ok {
		return [MatchesPerRound * randomnessBytesPerMatch]byte{}, ErrVrfNotRequested
	}
	o.consumed[requestID] = true
	return buf, nil
}

// RequestVrf implements C9's request phase: a round must be seeded and not
// yet settled, and may only have one outstanding VRF request at a time.
func RequestVrf(round *Round, oracle RandomnessOracle, now int64) error {
	if round.Status < StatusSeeded {
		return ErrRoundNotSeeded
	}
	if round.Status >= StatusSettled {
		return ErrRoundAlreadySettled
	}
	if round.Vrf != nil && !round.Vrf.Fulfilled {
		return ErrVrfAlreadyRequested
	}

	requestID, err := oracle.RequestRandomness(round.RoundID)
	if err != nil {
		return err
	}

	round.Vrf = &VrfRecord{
		RoundID:     round.RoundID,
		RequestID:   requestID,
		RequestedAt: now,
	}
	return nil
}

// FulfillVrf implements C9's fulfil phase: it pulls the randomness for the
// round's outstanding request and derives the MatchesPerRound outcomes, but
// does not settle the round itself — the caller passes the derived results
// into SettleRound.
func FulfillVrf(round *Round, oracle RandomnessOracle, now int64) ([MatchesPerRound]MatchOutcome, error) {
	if round.Vrf == nil {
		return [MatchesPerRound]MatchOutcome{}, ErrVrfNotRequested
	}
	if round.Vrf.Fulfilled {
		return [MatchesPerRound]MatchOutcome{}, ErrVrfAlreadyFulfilled
	}

	randomness, err := oracle.FulfillRandomness(round.Vrf.RequestID)
	if err != nil {
		return [MatchesPerRound]MatchOutcome{}, err
	}

	results := ExtractMatchResults(randomness)

	round.Vrf.Randomness = randomness
	round.Vrf.MatchResults = results
	round.Vrf.Fulfilled = true
	round.Vrf.FulfilledAt = now

	return results, nil
}

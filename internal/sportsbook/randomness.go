package sportsbook

import "encoding/binary"

const randomnessBytesPerMatch = 32

// OutcomeFromRandomness maps 32 bytes of randomness to a match outcome with
// equal 33.33% probability across home/away/draw. Only the first 8 bytes are
// consumed (C9, grounded on the VRF randomness-to-outcome mapping). Shorter
// input is zero-padded rather than indexed directly, so a malformed chunk
// can't panic the caller.
func OutcomeFromRandomness(randomness []byte) MatchOutcome {
	var buf [8]byte
	copy(buf[:], randomness)
	value := binary.LittleEndian.Uint64(buf[:])
	return MatchOutcome((value % 3) + 1)
}

// ExtractMatchResults derives all MatchesPerRound outcomes from a single
// 320-byte randomness buffer (32 bytes per match).
func ExtractMatchResults(randomness [MatchesPerRound * randomnessBytesPerMatch]byte) [MatchesPerRound]MatchOutcome {
	var results [MatchesPerRound]MatchOutcome
	for i := 0; i < MatchesPerRound; i++ {
		offset := i * randomnessBytesPerMatch
		chunk := randomness[offset : offset+randomnessBytesPerMatch]
		results[i] = OutcomeFromRandomness(chunk)
	}
	return results
}

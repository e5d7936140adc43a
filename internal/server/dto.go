package server

import "go-sportsbook/internal/sportsbook"

// matchSeedDTO is the operator-supplied team identity for one match,
// marshaled into sportsbook.MatchSeed before seeding.
type matchSeedDTO struct {
	HomeTeamID uint64 `json:"home_team_id"`
	AwayTeamID uint64 `json:"away_team_id"`
}

type seedRoundRequest struct {
	Matches [sportsbook.MatchesPerRound]matchSeedDTO `json:"matches"`
}

type settleRoundRequest struct {
	Results [sportsbook.MatchesPerRound]sportsbook.MatchOutcome `json:"results"`
}

type placeBetRequest struct {
	Bettor       string                    `json:"bettor"`
	MatchIndices []uint8                   `json:"match_indices"`
	Outcomes     []sportsbook.MatchOutcome `json:"outcomes"`
	Amount       uint64                    `json:"amount"`
}

type claimRequest struct {
	Claimer   string `json:"claimer"`
	MinPayout uint64 `json:"min_payout"`
}

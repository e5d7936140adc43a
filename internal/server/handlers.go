package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"go-sportsbook/internal/sportsbook"
)

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	health := fiber.Map{
		"database": s.db.Health(),
		"cache":    s.cache.Health(),
		"sportsbook": fiber.Map{
			"status":            "running",
			"connected_clients": s.hub.GetClientCount(),
		},
	}
	return c.JSON(health)
}

func roundIDParam(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("roundId"), 10, 64)
}

// Operator surface (spec.md §6): initialize_round, seed_round, request_vrf,
// fulfill_vrf, settle_round, finalize_round_revenue.

func (s *FiberServer) initializeRoundHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	round, err := s.manager.InitializeRound(c.Context(), roundID, time.Now().Unix())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(round)
}

func (s *FiberServer) seedRoundHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	var req seedRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	var seeds [sportsbook.MatchesPerRound]sportsbook.MatchSeed
	for i, m := range req.Matches {
		seeds[i] = sportsbook.MatchSeed{HomeTeamID: m.HomeTeamID, AwayTeamID: m.AwayTeamID}
	}

	if err := s.manager.SeedRound(c.Context(), roundID, seeds); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "status": "seeded"})
}

func (s *FiberServer) requestVRFHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	requestID, err := s.manager.RequestVRF(c.Context(), roundID, time.Now().Unix())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "request_id": requestID})
}

func (s *FiberServer) fulfillVRFHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	results, err := s.manager.FulfillVRF(c.Context(), roundID, time.Now().Unix())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "results": results})
}

func (s *FiberServer) settleRoundHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	var req settleRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.manager.SettleRound(c.Context(), roundID, req.Results, time.Now().Unix()); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "status": "settled"})
}

func (s *FiberServer) finalizeRoundRevenueHandler(c *fiber.Ctx) error {
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}

	if err := s.manager.FinalizeRoundRevenue(c.Context(), roundID, time.Now().Unix()); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"round_id": roundID, "status": "finalised"})
}

// Bettor surface: place_bet, claim_winnings.

func (s *FiberServer) placeBetHandler(c *fiber.Ctx) error {
	var req placeBetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	roundID, err := roundIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid round id"})
	}
	if req.Bettor == "" {
		return c.Status(400).JSON(fiber.Map{"error": "bettor is required"})
	}

	bet, err := s.manager.PlaceBet(c.Context(), sportsbook.PlaceBetInput{
		RoundID:      roundID,
		Bettor:       req.Bettor,
		MatchIndices: req.MatchIndices,
		Outcomes:     req.Outcomes,
		Amount:       req.Amount,
	})
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(bet)
}

func (s *FiberServer) claimWinningsHandler(c *fiber.Ctx) error {
	betID, err := strconv.ParseUint(c.Params("betId"), 10, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid bet id"})
	}

	var req claimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Claimer == "" {
		return c.Status(400).JSON(fiber.Map{"error": "claimer is required"})
	}

	result, err := s.manager.ClaimWinnings(c.Context(), betID, req.Claimer, req.MinPayout, time.Now().Unix())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

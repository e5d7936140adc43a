package server

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Accept,Authorization,Content-Type",
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1")

	// Operator surface
	admin := api.Group("/admin/rounds")
	admin.Post("/:roundId", s.initializeRoundHandler)
	admin.Post("/:roundId/seed", s.seedRoundHandler)
	admin.Post("/:roundId/vrf/request", s.requestVRFHandler)
	admin.Post("/:roundId/vrf/fulfill", s.fulfillVRFHandler)
	admin.Post("/:roundId/settle", s.settleRoundHandler)
	admin.Post("/:roundId/finalize-revenue", s.finalizeRoundRevenueHandler)

	// Bettor surface
	rounds := api.Group("/rounds")
	rounds.Post("/:roundId/bets", s.placeBetHandler)

	bets := api.Group("/bets")
	bets.Post("/:betId/claim", s.claimWinningsHandler)

	// WebSocket route
	s.App.Get("/ws", websocket.New(s.roundWebSocketHandler))
}

package server

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-sportsbook/internal/cache"
	"go-sportsbook/internal/database"
	"go-sportsbook/internal/sportsbook"
)

// FiberServer wires the Fiber HTTP/WS surface to the sportsbook.Manager
// orchestrator plus the ambient database/cache services, in the shape of
// the teacher's FiberServer embedding *fiber.App.
type FiberServer struct {
	*fiber.App

	db      database.Service
	cache   cache.Service
	manager *sportsbook.Manager
	hub     *sportsbook.Hub
	logger  *zap.Logger
}

func New(manager *sportsbook.Manager, hub *sportsbook.Hub, logger *zap.Logger) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "sportsbook",
			AppName:      "go-sportsbook",
		}),

		db:      database.New(),
		cache:   cache.New(),
		manager: manager,
		hub:     hub,
		logger:  logger,
	}

	return server
}

package server

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// roundWebSocketHandler streams round-lifecycle events (round_seeded,
// round_settled, bet_placed, bet_claimed, round_finalised) to subscribers.
// Adapted from the teacher's gameWebSocketHandler: register on connect,
// unregister on read error, no client-initiated message types beyond ping
// (the bettor surface here is a write path over HTTP, not the socket).
func (s *FiberServer) roundWebSocketHandler(conn *websocket.Conn) {
	userID := conn.Query("user_id", "anonymous")

	s.logger.Info("[WS] new connection", zap.String("user_id", userID))
	s.hub.RegisterClient(conn, userID)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("[WS] read error", zap.String("user_id", userID), zap.Error(err))
			s.hub.UnregisterClient(conn)
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var clientMsg map[string]interface{}
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			continue
		}

		if msgType, _ := clientMsg["type"].(string); msgType == "ping" {
			pongJSON, _ := json.Marshal(map[string]string{"type": "pong"})
			conn.WriteMessage(websocket.TextMessage, pongJSON)
		}
	}
}

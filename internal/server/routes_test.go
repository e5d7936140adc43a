package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-sportsbook/internal/sportsbook"
)

type fakeDB struct{}

func (fakeDB) Health() map[string]string {
	return map[string]string{"status": "up", "message": "It's healthy"}
}
func (fakeDB) DB() *sql.DB { return nil }
func (fakeDB) Close() error { return nil }

func newTestServer(t *testing.T) *FiberServer {
	t.Helper()
	pool := &sportsbook.BettingPool{
		Authority:          "operator",
		TreasuryIdentity:   "treasury",
		ProtocolFeeBps:     200,
		WinnerShareBps:     9000,
		SeasonPoolShareBps: 200,
	}
	treasury := sportsbook.NewInMemoryTreasury()
	treasury.Credit("alice", 10_000_000_000)
	treasury.Credit("treasury", 100_000_000_000)
	oracle := sportsbook.NewDevOracle()
	logger := zap.NewNop()
	manager := sportsbook.NewManager(pool, oracle, treasury, nil, logger, nil, nil)

	s := &FiberServer{
		App:     fiber.New(),
		manager: manager,
		hub:     sportsbook.NewHub(logger),
		logger:  logger,
		db:      fakeDB{},
	}
	s.RegisterFiberRoutes()
	return s
}

func testSeedRequest() seedRoundRequest {
	var req seedRoundRequest
	for i := range req.Matches {
		req.Matches[i] = matchSeedDTO{HomeTeamID: uint64(100 + i), AwayTeamID: uint64(200 + i)}
	}
	return req
}

func TestInitializeAndSeedRoundRoutes(t *testing.T) {
	s := newTestServer(t)

	req, _ := http.NewRequest("POST", "/api/v1/admin/rounds/0", nil)
	resp, err := s.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("initialize round: status = %d", resp.StatusCode)
	}

	seedBody := testSeedRequest()
	seedJSON, _ := json.Marshal(seedBody)
	req2, _ := http.NewRequest("POST", "/api/v1/admin/rounds/0/seed", bytes.NewReader(seedJSON))
	req2.Header.Set("Content-Type", "application/json")
	resp2, err := s.Test(req2)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp2.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp2.Body)
		t.Fatalf("seed round: status = %d, body = %s", resp2.StatusCode, body)
	}
}

func TestPlaceBetRejectsUnseededRound(t *testing.T) {
	s := newTestServer(t)

	req, _ := http.NewRequest("POST", "/api/v1/admin/rounds/0", nil)
	if _, err := s.Test(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	betBody, _ := json.Marshal(placeBetRequest{
		Bettor:       "alice",
		MatchIndices: []uint8{0},
		Outcomes:     []sportsbook.MatchOutcome{sportsbook.OutcomeHome},
		Amount:       1_000_000_000,
	})
	betReq, _ := http.NewRequest("POST", "/api/v1/rounds/0/bets", bytes.NewReader(betBody))
	betReq.Header.Set("Content-Type", "application/json")
	resp, err := s.Test(betReq)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unseeded round, got %d", resp.StatusCode)
	}
}

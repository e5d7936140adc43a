package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"go-sportsbook/internal/config"
)

// Service wraps a database/sql pool used for the /health endpoint;
// internal/store does not use it and opens its own pgxpool via
// store.NewPool. It mirrors the shape of internal/cache's Service: New()
// returns a process-wide singleton, Health() reports pool stats for the
// /health endpoint, Close() tears the pool down on shutdown.
type Service interface {
	Health() map[string]string
	DB() *sql.DB
	Close() error
}

type service struct {
	db *sql.DB
}

var (
	database = config.Env("BLUEPRINT_DB_DATABASE", "sportsbook")
	password = config.Env("BLUEPRINT_DB_PASSWORD", "")
	username = config.Env("BLUEPRINT_DB_USERNAME", "postgres")
	port     = config.Env("BLUEPRINT_DB_PORT", "5432")
	host     = config.Env("BLUEPRINT_DB_HOST", "localhost")
	schema   = config.Env("BLUEPRINT_DB_SCHEMA", "public")

	dbInstance *service
)

func New() Service {
	if dbInstance != nil {
		return dbInstance
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		username, password, host, port, database, schema)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatalf("[DB] failed to open connection: %v", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	dbInstance = &service{db: db}
	return dbInstance
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health pings the pool and reports connection stats, in the shape the
// operator dashboard and /health endpoint expect.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("[DB] health check failed: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)
	stats["wait_count"] = fmt.Sprintf("%d", dbStats.WaitCount)

	return stats
}

func (s *service) Close() error {
	log.Printf("[DB] disconnecting from %s", database)
	return s.db.Close()
}

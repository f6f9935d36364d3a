// Package testutil wires test Postgres and Redis for package tests.
package testutil

import (
	"context"
	"fmt"
	"log"
	"testing"

	"go-gin-cinema-booking/config"
	"go-gin-cinema-booking/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SetupDB connects to the test database from config.LoadTestConfig and
// applies the schema.
func SetupDB() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	testDB, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %v", err)
	}
	log.Println("Test database connected successfully")

	cleanup := func() {
		testDB.Close()
		log.Println("Test database closed")
	}
	return testDB, cleanup, nil
}

// ResetDB truncates every table and restarts identities.
func ResetDB(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE bookings, showtimes, movies, toys, users RESTART IDENTITY CASCADE`)
	return err
}

// NewMiniRedis 起一個 in-memory redis，測試結束自動關閉
func NewMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

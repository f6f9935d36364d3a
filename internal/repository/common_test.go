package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"go-gin-cinema-booking/internal/testutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testDB 是測試用的資料庫連接池
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	pool, cleanup, err := testutil.SetupDB()
	if err != nil {
		log.Printf("Skipping repository tests, test database unavailable: %v", err)
		os.Exit(0)
	}
	testDB = pool

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	if err := testutil.ResetDB(context.Background(), testDB); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// createTestUser 輔助函數：創建測試用的 user
func createTestUser(t *testing.T, name, email string) int64 {
	t.Helper()
	var id int64
	err := testDB.QueryRow(context.Background(),
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`, name, email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// createTestShowtime 輔助函數：創建電影與場次
func createTestShowtime(t *testing.T, title string, price int64) int64 {
	t.Helper()
	ctx := context.Background()

	var movieID int64
	if err := testDB.QueryRow(ctx,
		`INSERT INTO movies (title, duration_minutes) VALUES ($1, 120) RETURNING id`, title,
	).Scan(&movieID); err != nil {
		t.Fatalf("Failed to create test movie: %v", err)
	}

	var id int64
	if err := testDB.QueryRow(ctx, `
		INSERT INTO showtimes (movie_id, room, format, starts_at, price)
		VALUES ($1, 'Room 1', '2D', $2, $3)
		RETURNING id
	`, movieID, time.Now().Add(24*time.Hour).UTC(), price).Scan(&id); err != nil {
		t.Fatalf("Failed to create test showtime: %v", err)
	}
	return id
}

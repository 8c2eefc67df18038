//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestReservation(t *testing.T, db DBLike, user string, start, end time.Time, note *string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO reservations (id, user_name, start_time, end_time, note) VALUES ($1, $2, $3, $4, $5)",
		id, user, start, end, note)
	require.NoError(t, err)

	return id
}

func CountReservations(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM reservations").Scan(&n)
	require.NoError(t, err)

	return n
}

// truncates application tables; the migration history survives
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE reservations")
	return err
}

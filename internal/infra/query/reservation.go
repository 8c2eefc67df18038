package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
	ID        uuid.UUID
	UserName  string
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	Note      pgtype.Text
	CreatedAt pgtype.Timestamptz
}

const reservationColumns = `id, user_name, start_time, end_time, note, created_at`

func scanReservation(row pgx.Row) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID,
		&r.UserName,
		&r.StartTime,
		&r.EndTime,
		&r.Note,
		&r.CreatedAt,
	)
	return r, err
}

const createReservation = `
INSERT INTO reservations (id, user_name, start_time, end_time, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + reservationColumns

type CreateReservationParams struct {
	ID        uuid.UUID
	UserName  string
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	Note      pgtype.Text
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (Reservation, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.UserName,
		arg.StartTime,
		arg.EndTime,
		arg.Note,
		arg.CreatedAt,
	)
	return scanReservation(row)
}

const deleteReservation = `DELETE FROM reservations WHERE id = $1`

func (q *Queries) DeleteReservation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	tag, err := db.Exec(ctx, deleteReservation, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Half-open intervals: a slot ending exactly when another starts is not an overlap.
const existsOverlappingReservation = `
SELECT EXISTS (
    SELECT 1 FROM reservations
    WHERE start_time < $2
      AND end_time > $1
      AND ($3::uuid IS NULL OR id <> $3::uuid)
)`

type ExistsOverlappingReservationParams struct {
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	ExcludeID pgtype.UUID
}

func (q *Queries) ExistsOverlappingReservation(ctx context.Context, db DBTX, arg ExistsOverlappingReservationParams) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, existsOverlappingReservation, arg.StartTime, arg.EndTime, arg.ExcludeID).Scan(&exists)
	return exists, err
}

const getReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const listReservations = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY start_time ASC, id ASC`

func (q *Queries) ListReservations(ctx context.Context, db DBTX) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Reservation{}
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReservationsInRange = `
SELECT ` + reservationColumns + ` FROM reservations
WHERE start_time < $2 AND end_time > $1
ORDER BY start_time ASC, id ASC`

type ListReservationsInRangeParams struct {
	From pgtype.Timestamptz
	To   pgtype.Timestamptz
}

func (q *Queries) ListReservationsInRange(ctx context.Context, db DBTX, arg ListReservationsInRangeParams) ([]Reservation, error) {
	rows, err := db.Query(ctx, listReservationsInRange, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Reservation{}
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

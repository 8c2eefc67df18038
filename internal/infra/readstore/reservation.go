package readstore

import (
	"context"
	"log/slog"
	"time"

	"reservebook/internal/infra"
	"reservebook/internal/infra/query"
	"reservebook/internal/pkg/pgconv"
	"reservebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservation, error)
	ListReservations(ctx context.Context, db query.DBTX) ([]query.Reservation, error)
	ListReservationsInRange(ctx context.Context, db query.DBTX, arg query.ListReservationsInRangeParams) ([]query.Reservation, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      query.DBTX
	logger  *slog.Logger
}

func NewReservationReadStore(queries ReservationViewQueries, db query.DBTX, logger *slog.Logger) *ReservationReadStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationReadStore{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find reservation by ID", err)
	}

	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list reservations", err)
	}
	return rowsToReservationViews(rows), nil
}

func (r *ReservationReadStore) FindInRange(ctx context.Context, from, to time.Time) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsInRange(ctx, r.db, query.ListReservationsInRangeParams{
		From: pgconv.TimeToPgtype(from),
		To:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list reservations in range", err)
	}
	return rowsToReservationViews(rows), nil
}

func rowsToReservationViews(rows []query.Reservation) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = rowToReservationView(row)
	}
	return result
}

func rowToReservationView(row query.Reservation) *queries.ReservationView {
	return &queries.ReservationView{
		ID:        row.ID,
		User:      row.UserName,
		StartTime: pgconv.TimeFromPgtype(row.StartTime),
		EndTime:   pgconv.TimeFromPgtype(row.EndTime),
		Note:      pgconv.StringPtrFromPgtype(row.Note),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

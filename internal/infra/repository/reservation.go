package repository

import (
	"context"
	"log/slog"

	"reservebook/internal/domain/reservation"
	"reservebook/internal/infra"
	"reservebook/internal/infra/db"
	"reservebook/internal/infra/query"
	"reservebook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (query.Reservation, error)
	DeleteReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error)
	ExistsOverlappingReservation(ctx context.Context, db query.DBTX, arg query.ExistsOverlappingReservationParams) (bool, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	logger  *slog.Logger
}

func NewReservationRepository(queries ReservationWriteQueries, logger *slog.Logger) *ReservationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReservationRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := reservationToParams(res)

	row, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		kind := infra.ClassifyPgErr(err)
		if kind == infra.KindConflict {
			return uuid.Nil, infra.WrapRepoErr(r.logger, kind, "reservation overlaps an existing one", err)
		}
		return uuid.Nil, infra.WrapRepoErr(r.logger, kind, "failed to create reservation", err)
	}

	return row.ID, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	affected, err := r.queries.DeleteReservation(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to delete reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) ExistsOverlap(ctx context.Context, tx db.DBTX, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	exists, err := r.queries.ExistsOverlappingReservation(ctx, tx, query.ExistsOverlappingReservationParams{
		StartTime: pgconv.TimeToPgtype(slot.Start()),
		EndTime:   pgconv.TimeToPgtype(slot.End()),
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check overlapping reservations", err)
	}
	return exists, nil
}

func reservationToParams(res *reservation.Reservation) query.CreateReservationParams {
	return query.CreateReservationParams{
		ID:        res.ID(),
		UserName:  res.User().String(),
		StartTime: pgconv.TimeToPgtype(res.TimeSlot().Start()),
		EndTime:   pgconv.TimeToPgtype(res.TimeSlot().End()),
		Note:      pgconv.StringToPgtype(res.Note().String()),
		CreatedAt: pgconv.TimeToPgtype(res.CreatedAt()),
	}
}

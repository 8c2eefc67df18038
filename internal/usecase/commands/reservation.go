package commands

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

import (
	"context"
	"time"

	"reservebook/internal/domain/reservation"
	"reservebook/internal/infra"
	"reservebook/internal/pkg/clock"
	"reservebook/internal/pkg/errs"
	"reservebook/internal/usecase/queries"
	"reservebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	User      string
	StartTime time.Time
	EndTime   time.Time
	Note      string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error)
	DeleteReservation(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewReservationUseCase(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) ReservationCommands {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationUseCaseImpl{uow: uow, clock: clk, loc: loc}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	entity, err := uc.buildReservation(in)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()

		overlaps, derr := repo.ExistsOverlap(ctx, tx.DB(), entity.TimeSlot(), nil)
		if derr != nil {
			return derr
		}
		if overlaps {
			return errs.ErrReservationConflict
		}

		_, derr = repo.Create(ctx, tx.DB(), entity)
		return derr
	})
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrReservationConflict), infra.IsKind(err, infra.KindConflict):
			return nil, errs.Mark(err, errs.ErrReservationConflict)
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	return toView(entity).In(uc.loc), nil
}

// An inverted range is reported as ErrInvalidTimeSlot even when other fields
// are invalid too.
func (uc *reservationUseCaseImpl) buildReservation(in CreateReservationInput) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(in.StartTime, in.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	user, err := reservation.NewUserName(in.User)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	note, err := reservation.NewNote(in.Note)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return reservation.NewReservation(uc.clock, user, slot, note), nil
}

func (uc *reservationUseCaseImpl) DeleteReservation(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrReservationNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func toView(r *reservation.Reservation) *queries.ReservationView {
	return &queries.ReservationView{
		ID:        r.ID(),
		User:      r.User().String(),
		StartTime: r.TimeSlot().Start(),
		EndTime:   r.TimeSlot().End(),
		Note:      r.Note().Ptr(),
		CreatedAt: r.CreatedAt(),
	}
}

package queries

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"reservebook/internal/domain/reservation"
	"reservebook/internal/infra"
	"reservebook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *ReservationView) Title() string {
	return reservation.Title(v.User, v.Note)
}

// In re-expresses the timestamps in loc without changing the instants.
func (v *ReservationView) In(loc *time.Location) *ReservationView {
	cp := *v
	cp.StartTime = v.StartTime.In(loc)
	cp.EndTime = v.EndTime.In(loc)
	cp.CreatedAt = v.CreatedAt.In(loc)
	return &cp
}

// Range bounds a listing to reservations intersecting [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context) ([]*ReservationView, error)
	ListInRange(ctx context.Context, r Range) ([]*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindAll(ctx context.Context) ([]*ReservationView, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
	loc  *time.Location
}

func NewReservationQueries(repo ReservationViewRepo, loc *time.Location) ReservationQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationQueriesImpl{repo: repo, loc: loc}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}
	return v.In(q.loc), nil
}

func (q *reservationQueriesImpl) List(ctx context.Context) ([]*ReservationView, error) {
	rows, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return q.localize(rows), nil
}

// ListInRange falls back to the full listing when the range is empty or inverted.
func (q *reservationQueriesImpl) ListInRange(ctx context.Context, r Range) ([]*ReservationView, error) {
	if r.From.IsZero() || r.To.IsZero() || !r.To.After(r.From) {
		return q.List(ctx)
	}
	rows, err := q.repo.FindInRange(ctx, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return q.localize(rows), nil
}

func (q *reservationQueriesImpl) localize(rows []*ReservationView) []*ReservationView {
	out := make([]*ReservationView, len(rows))
	for i, row := range rows {
		out[i] = row.In(q.loc)
	}
	return out
}

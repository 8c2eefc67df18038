//go:build unit || e2e

package builder

import (
	"net/url"
	"time"

	reqdto "reservebook/internal/handler/dto/request"
	"reservebook/internal/usecase/queries"

	"github.com/google/uuid"
)

const formLayout = "2006-01-02T15:04"

type ReservationBuilder struct {
	ID        uuid.UUID
	User      string
	Start     time.Time
	End       time.Time
	Note      string
	CreatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	tokyo := time.FixedZone("Asia/Tokyo", 9*60*60)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, tokyo)
	return &ReservationBuilder{
		ID:        uuid.New(),
		User:      "Alice",
		Start:     start,
		End:       start.Add(time.Hour),
		Note:      "",
		CreatedAt: start.Add(-24 * time.Hour),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Between sets the slot to [start, end) as hh:mm on the builder's day.
func (r *ReservationBuilder) Between(startHour, startMin, endHour, endMin int) *ReservationBuilder {
	day := r.Start
	r.Start = time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, day.Location())
	r.End = time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, day.Location())
	return r
}

func (r *ReservationBuilder) note() *string {
	if r.Note == "" {
		return nil
	}
	n := r.Note
	return &n
}

// Build methods
func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:        r.ID,
		User:      r.User,
		StartTime: r.Start,
		EndTime:   r.End,
		Note:      r.note(),
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		User:  r.User,
		Start: r.Start.Format(time.RFC3339),
		End:   r.End.Format(time.RFC3339),
		Note:  r.Note,
	}
}

// BuildForm renders the slot the way <input type="datetime-local"> submits it.
func (r *ReservationBuilder) BuildForm() url.Values {
	form := url.Values{}
	form.Set("user", r.User)
	form.Set("start", r.Start.Format(formLayout))
	form.Set("end", r.End.Format(formLayout))
	if r.Note != "" {
		form.Set("note", r.Note)
	}
	return form
}

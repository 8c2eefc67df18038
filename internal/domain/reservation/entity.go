package reservation

import (
	"errors"
	"time"

	"reservebook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot = errors.New("end time must be after start time")
	ErrUserRequired    = errors.New("user is required")
	ErrUserTooLong     = errors.New("user is too long")
	ErrNoteTooLong     = errors.New("note is too long")
)

// TitleSeparator joins user and note in calendar titles.
const TitleSeparator = " — "

type Reservation struct {
	id        uuid.UUID
	user      UserName
	timeSlot  TimeSlot
	note      Note
	createdAt time.Time
}

func NewReservation(clk clock.Clock, user UserName, slot TimeSlot, note Note) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		user:      user,
		timeSlot:  slot,
		note:      note,
		createdAt: clk.Now(),
	}
}

func ReconstructReservation(
	id uuid.UUID,
	user UserName,
	timeSlot TimeSlot,
	note Note,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		user:      user,
		timeSlot:  timeSlot,
		note:      note,
		createdAt: createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) User() UserName       { return r.user }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Note() Note           { return r.note }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

func (r *Reservation) Title() string {
	return Title(r.user.String(), r.note.Ptr())
}

// Title renders the calendar label for a reservation.
func Title(user string, note *string) string {
	if note == nil || *note == "" {
		return user
	}
	return user + TitleSeparator + *note
}

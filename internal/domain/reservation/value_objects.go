package reservation

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxUserNameLength = 80
	MaxNoteLength     = 200
)

// TimeSlot is a half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether the two intervals share any instant. Touching slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) In(loc *time.Location) TimeSlot {
	return TimeSlot{start: ts.start.In(loc), end: ts.end.In(loc)}
}

type UserName struct {
	value string
}

func NewUserName(value string) (UserName, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return UserName{}, ErrUserRequired
	}
	if utf8.RuneCountInString(v) > MaxUserNameLength {
		return UserName{}, ErrUserTooLong
	}
	return UserName{value: v}, nil
}

func (u UserName) String() string {
	return u.value
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: v}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Ptr returns nil for an empty note so storage keeps NULL rather than "".
func (n Note) Ptr() *string {
	if n.IsEmpty() {
		return nil
	}
	v := n.value
	return &v
}

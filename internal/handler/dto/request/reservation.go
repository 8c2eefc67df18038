package request

import (
	"errors"
	"strings"
	"time"

	"reservebook/internal/usecase/commands"
)

var ErrInvalidTimeFormat = errors.New("invalid time format")

// Layouts accepted for start/end. Zone-less layouts are read in the application time zone;
// the first two are what <input type="datetime-local"> submits.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

type CreateReservationRequest struct {
	User  string `form:"user" json:"user" binding:"required" example:"Alice"`
	Start string `form:"start" json:"start" binding:"required" example:"2024-01-01T10:00"`
	End   string `form:"end" json:"end" binding:"required" example:"2024-01-01T11:00"`
	Note  string `form:"note" json:"note" example:"standup"`
}

func (r CreateReservationRequest) ToInput(loc *time.Location) (commands.CreateReservationInput, error) {
	start, err := ParseTime(r.Start, loc)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	end, err := ParseTime(r.End, loc)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		User:      r.User,
		StartTime: start,
		EndTime:   end,
		Note:      r.Note,
	}, nil
}

func ParseTime(value string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, ErrInvalidTimeFormat
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

// EventsRangeRequest is the visible window a calendar asks for; both bounds are optional.
type EventsRangeRequest struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

func (r EventsRangeRequest) Bounds(loc *time.Location) (from, to time.Time) {
	if r.Start == "" || r.End == "" {
		return time.Time{}, time.Time{}
	}
	from, err := parseRangeBound(r.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}
	}
	to, err = parseRangeBound(r.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}
	}
	return from, to
}

func parseRangeBound(v string, loc *time.Location) (time.Time, error) {
	if t, err := ParseTime(v, loc); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(v), loc)
}

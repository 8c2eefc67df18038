package response

import (
	"time"

	"reservebook/internal/pkg/notice"
	"reservebook/internal/usecase/commands"
	"reservebook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// EventResponse is one calendar entry of the /events feed.
type EventResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func FromReservationViewsToEvents(views []*queries.ReservationView) []EventResponse {
	events := make([]EventResponse, len(views))
	for i, v := range views {
		events[i] = EventResponse{
			ID:    v.ID.String(),
			Title: v.Title(),
			Start: v.StartTime.Format(time.RFC3339),
			End:   v.EndTime.Format(time.RFC3339),
		}
	}
	return events
}

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromReservationView copies matching fields; Title is taken from the view's method.
func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatusResponse is the JSON rendition of a notice.
type StatusResponse struct {
	Status      notice.Status        `json:"status"`
	Message     string               `json:"message"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
}

func FromNotice(n notice.Notice) StatusResponse {
	return StatusResponse{Status: n.Status, Message: n.Message}
}

type InitDBResponse struct {
	Status  string   `json:"status"`
	Tables  []string `json:"tables"`
	Applied []string `json:"applied"`
}

func FromInitDBResult(res *commands.InitDBResult) InitDBResponse {
	resp := InitDBResponse{Status: "ok", Tables: []string{}, Applied: []string{}}
	if res == nil {
		return resp
	}
	if res.Tables != nil {
		resp.Tables = res.Tables
	}
	if res.Applied != nil {
		resp.Applied = res.Applied
	}
	return resp
}

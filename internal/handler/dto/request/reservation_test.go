//go:build unit

package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, tokyo)

	ok := []string{
		"2024-01-01T10:00",
		"2024-01-01T10:00:00",
		"2024-01-01 10:00",
		" 2024-01-01 10:00:00 ",
		"2024-01-01T10:00:00+09:00",
		"2024-01-01T01:00:00Z",
	}
	for _, v := range ok {
		t.Run(v, func(t *testing.T) {
			got, err := ParseTime(v, tokyo)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	for _, v := range []string{"", "tomorrow", "2024-13-01T10:00", "10:00"} {
		t.Run("invalid "+v, func(t *testing.T) {
			_, err := ParseTime(v, tokyo)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestCreateReservationRequest_ToInput(t *testing.T) {
	req := CreateReservationRequest{User: "Alice", Start: "2024-01-01T10:00", End: "2024-01-01T11:00", Note: "n"}

	in, err := req.ToInput(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Alice", in.User)
	assert.Equal(t, time.Hour, in.EndTime.Sub(in.StartTime))
	assert.Equal(t, "n", in.Note)

	req.End = "later"
	_, err = req.ToInput(time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestEventsRangeRequest_Bounds(t *testing.T) {
	from, to := EventsRangeRequest{Start: "2024-01-01", End: "2024-01-08"}.Bounds(time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 7*24*time.Hour, to.Sub(from))

	from, to = EventsRangeRequest{Start: "2024-01-01T00:00:00+09:00", End: "2024-01-08T00:00:00+09:00"}.Bounds(time.UTC)
	assert.False(t, from.IsZero())
	assert.False(t, to.IsZero())

	from, to = EventsRangeRequest{Start: "garbage", End: "2024-01-08"}.Bounds(time.UTC)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	from, _ = EventsRangeRequest{}.Bounds(time.UTC)
	assert.True(t, from.IsZero())
}

//go:build unit

package pgconv

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestUUIDPtrToPgtype(t *testing.T) {
	assert.False(t, UUIDPtrToPgtype(nil).Valid)

	id := uuid.New()
	got := UUIDPtrToPgtype(&id)
	assert.True(t, got.Valid)
	assert.Equal(t, [16]byte(id), got.Bytes)
}

func TestStringPgtype(t *testing.T) {
	assert.False(t, StringToPgtype("").Valid, "empty text is stored as NULL")
	assert.Equal(t, pgtype.Text{String: "standup", Valid: true}, StringToPgtype("standup"))

	assert.Nil(t, StringPtrFromPgtype(pgtype.Text{}))
	got := StringPtrFromPgtype(pgtype.Text{String: "standup", Valid: true})
	if assert.NotNil(t, got) {
		assert.Equal(t, "standup", *got)
	}
}

func TestTimePgtype(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, TimeFromPgtype(TimeToPgtype(ts)).Equal(ts))
	assert.True(t, TimeFromPgtype(pgtype.Timestamptz{}).IsZero())
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(fmt.Errorf("get reservation: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(errors.New("connection refused")))
}

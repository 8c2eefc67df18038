//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"reservebook/internal/domain/reservation"
	"reservebook/internal/infra"
	"reservebook/internal/infra/query"
	"reservebook/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db query.DBTX, arg query.CreateReservationParams) (query.Reservation, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(query.Reservation), args.Error(1)
}

func (m *MockReservationWriteQueries) DeleteReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) ExistsOverlappingReservation(ctx context.Context, db query.DBTX, arg query.ExistsOverlappingReservationParams) (bool, error) {
	args := m.Called(ctx, db, arg)
	return args.Bool(0), args.Error(1)
}

func newTestReservation(t *testing.T, note string) *reservation.Reservation {
	t.Helper()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	slot, err := reservation.NewTimeSlot(start, start.Add(time.Hour))
	require.NoError(t, err)
	user, err := reservation.NewUserName("Alice")
	require.NoError(t, err)
	n, err := reservation.NewNote(note)
	require.NoError(t, err)
	return reservation.NewReservation(clock.NewMockClock(start.Add(-time.Hour)), user, slot, n)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", note: "standup"},
		{name: "success without note", note: ""},
		{name: "exclusion violation", mockError: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindConflict},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestReservation(t, tt.note)
			mockQueries := new(MockReservationWriteQueries)
			mockQueries.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.CreateReservationParams) bool {
				return p.ID == res.ID() &&
					p.UserName == "Alice" &&
					p.StartTime.Time.Equal(res.TimeSlot().Start()) &&
					p.EndTime.Time.Equal(res.TimeSlot().End()) &&
					p.Note.Valid == (tt.note != "")
			})).Return(query.Reservation{ID: res.ID()}, tt.mockError)

			repo := NewReservationRepository(mockQueries, nil)
			id, err := repo.Create(context.Background(), nil, res)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, res.ID(), id)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestDelete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "not found", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockReservationWriteQueries)
			mockQueries.On("DeleteReservation", mock.Anything, mock.Anything, id).Return(tt.affected, tt.mockError)

			err := NewReservationRepository(mockQueries, nil).Delete(context.Background(), nil, id)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestExistsOverlap(t *testing.T) {
	res := newTestReservation(t, "")
	exclude := uuid.New()

	t.Run("passes slot and exclusion", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("ExistsOverlappingReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p query.ExistsOverlappingReservationParams) bool {
			return p.StartTime.Time.Equal(res.TimeSlot().Start()) &&
				p.EndTime.Time.Equal(res.TimeSlot().End()) &&
				p.ExcludeID.Valid && p.ExcludeID.Bytes == exclude
		})).Return(true, nil)

		exists, err := NewReservationRepository(mockQueries, nil).ExistsOverlap(context.Background(), nil, res.TimeSlot(), &exclude)
		require.NoError(t, err)
		assert.True(t, exists)
		mockQueries.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		mockQueries := new(MockReservationWriteQueries)
		mockQueries.On("ExistsOverlappingReservation", mock.Anything, mock.Anything, mock.Anything).Return(false, assert.AnError)

		_, err := NewReservationRepository(mockQueries, nil).ExistsOverlap(context.Background(), nil, res.TimeSlot(), nil)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"reservebook/internal/domain/reservation"
	"reservebook/internal/infra"
	"reservebook/internal/pkg/clock"
	"reservebook/internal/pkg/errs"
	"reservebook/internal/usecase/commands"
	"reservebook/internal/usecase/shared"
	sharedmock "reservebook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	repo     *sharedmock.MockReservationRepository
	loc      *time.Location
	now      time.Time
	useCase  commands.ReservationCommands
	baseTime time.Time
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.repo = sharedmock.NewMockReservationRepository(s.ctrl)

	loc, err := time.LoadLocation("Asia/Tokyo")
	s.Require().NoError(err)
	s.loc = loc
	s.now = time.Date(2024, 1, 1, 8, 0, 0, 0, loc)
	s.baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, loc)
	s.useCase = commands.NewReservationUseCase(s.uow, clock.NewMockClock(s.now), loc)

	s.tx.EXPECT().Reservations().Return(s.repo).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) expectTx() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).Times(1)
}

func (s *ReservationCommandsTestSuite) input(startH, endH int) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		User:      "Alice",
		StartTime: s.baseTime.Add(time.Duration(startH) * time.Hour),
		EndTime:   s.baseTime.Add(time.Duration(endH) * time.Hour),
		Note:      "standup",
	}
}

func (s *ReservationCommandsTestSuite) TestCreateReservation() {
	s.Run("success: overlap check and insert share the transaction", func() {
		in := s.input(0, 1)
		s.expectTx()
		gomock.InOrder(
			s.repo.EXPECT().ExistsOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
				DoAndReturn(func(_ context.Context, _ any, slot reservation.TimeSlot, _ *uuid.UUID) (bool, error) {
					s.True(slot.Start().Equal(in.StartTime))
					s.True(slot.End().Equal(in.EndTime))
					return false, nil
				}),
			s.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ any, r *reservation.Reservation) (uuid.UUID, error) {
					return r.ID(), nil
				}),
		)

		view, err := s.useCase.CreateReservation(context.Background(), in)
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, view.ID)
		s.Equal("Alice", view.User)
		s.Equal("Alice — standup", view.Title())
		s.Equal(s.loc, view.StartTime.Location())
		s.True(s.now.Equal(view.CreatedAt))
	})

	s.Run("error: overlapping slot is a conflict", func() {
		s.expectTx()
		s.repo.EXPECT().ExistsOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.useCase.CreateReservation(context.Background(), s.input(0, 1))
		s.True(errs.Is(err, errs.ErrReservationConflict))
	})

	s.Run("error: exclusion violation on insert is a conflict", func() {
		s.expectTx()
		s.repo.EXPECT().ExistsOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.RepositoryError{Kind: infra.KindConflict})

		_, err := s.useCase.CreateReservation(context.Background(), s.input(0, 1))
		s.True(errs.Is(err, errs.ErrReservationConflict))
	})

	s.Run("error: storage failure", func() {
		s.expectTx()
		s.repo.EXPECT().ExistsOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, infra.RepositoryError{Kind: infra.KindDBFailure})

		_, err := s.useCase.CreateReservation(context.Background(), s.input(0, 1))
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
		s.False(errs.Is(err, errs.ErrReservationConflict))
	})
}

func (s *ReservationCommandsTestSuite) TestCreateReservation_Validation() {
	cases := []struct {
		name   string
		mutate func(*commands.CreateReservationInput)
		errIs  error
	}{
		{name: "end equals start", mutate: func(in *commands.CreateReservationInput) { in.EndTime = in.StartTime }, errIs: errs.ErrInvalidTimeSlot},
		{name: "end before start", mutate: func(in *commands.CreateReservationInput) { in.EndTime = in.StartTime.Add(-time.Minute) }, errIs: errs.ErrInvalidTimeSlot},
		{name: "inverted range wins over empty user", mutate: func(in *commands.CreateReservationInput) {
			in.EndTime = in.StartTime
			in.User = ""
		}, errIs: errs.ErrInvalidTimeSlot},
		{name: "blank user", mutate: func(in *commands.CreateReservationInput) { in.User = "  " }, errIs: errs.ErrDomainValidation},
		{name: "user too long", mutate: func(in *commands.CreateReservationInput) { in.User = strings.Repeat("a", 81) }, errIs: errs.ErrDomainValidation},
		{name: "note too long", mutate: func(in *commands.CreateReservationInput) { in.Note = strings.Repeat("a", 201) }, errIs: errs.ErrDomainValidation},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			in := s.input(0, 1)
			tc.mutate(&in)

			_, err := s.useCase.CreateReservation(context.Background(), in)
			s.True(errs.Is(err, tc.errIs), "got %v", err)
		})
	}
}

func (s *ReservationCommandsTestSuite) TestDeleteReservation() {
	id := uuid.New()

	s.Run("success", func() {
		s.expectTx()
		s.repo.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(nil)
		s.NoError(s.useCase.DeleteReservation(context.Background(), id))
	})

	s.Run("not found", func() {
		s.expectTx()
		s.repo.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(infra.RepositoryError{Kind: infra.KindNotFound})
		err := s.useCase.DeleteReservation(context.Background(), id)
		s.True(errs.Is(err, errs.ErrReservationNotFound))
	})

	s.Run("storage failure", func() {
		s.expectTx()
		s.repo.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(infra.RepositoryError{Kind: infra.KindDBFailure})
		err := s.useCase.DeleteReservation(context.Background(), id)
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}

func TestSchemaCommands_InitDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	schema := sharedmock.NewMockSchemaManager(ctrl)
	uc := commands.NewSchemaUseCase(schema)

	t.Run("success", func(t *testing.T) {
		schema.EXPECT().Migrate(gomock.Any()).Return([]string{"20240101000000_create_reservations"}, nil)
		schema.EXPECT().Tables(gomock.Any()).Return([]string{"reservations"}, nil)

		res, err := uc.InitDB(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"reservations"}, res.Tables)
		assert.Len(t, res.Applied, 1)
	})

	t.Run("migration failure", func(t *testing.T) {
		schema.EXPECT().Migrate(gomock.Any()).Return(nil, assert.AnError)

		_, err := uc.InitDB(context.Background())
		assert.True(t, errs.Is(err, errs.ErrMigrationFailed))
	})
}

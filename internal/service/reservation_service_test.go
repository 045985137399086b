package service

import (
	"context"
	"testing"

	"campus-parking/internal/model"
	repoMocks "campus-parking/internal/repository/mocks"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_GetByID(t *testing.T) {
	ctx := context.Background()
	reservation := &model.Reservation{ID: 100, UserID: 7, BookingStatus: model.BookingStatusReserved}

	t.Run("Success - 本人可讀", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)
		repo.On("FindByID", ctx, 100).Return(reservation, nil).Once()

		got, err := NewReservationService(repo).GetByID(ctx, 100, model.Identity{UserID: 7, Role: model.RoleUser})

		require.NoError(t, err)
		assert.Equal(t, 100, got.ID)
	})

	t.Run("Success - attendant 可讀任何人的預約", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)
		repo.On("FindByID", ctx, 100).Return(reservation, nil).Once()

		_, err := NewReservationService(repo).GetByID(ctx, 100, model.Identity{UserID: 2, Role: model.RoleAttendant})

		require.NoError(t, err)
	})

	t.Run("Failed - 其他一般使用者拒讀", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)
		repo.On("FindByID", ctx, 100).Return(reservation, nil).Once()

		_, err := NewReservationService(repo).GetByID(ctx, 100, model.Identity{UserID: 8, Role: model.RoleUser})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - 不存在", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)
		repo.On("FindByID", ctx, 100).Return(nil, apperrors.ErrReservationNotFound).Once()

		_, err := NewReservationService(repo).GetByID(ctx, 100, model.Identity{UserID: 7, Role: model.RoleUser})

		assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
	})
}

func TestReservationService_CanAccess(t *testing.T) {
	ctx := context.Background()
	reservation := &model.Reservation{ID: 100, UserID: 7}

	t.Run("管理端不查庫直接放行", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)

		ok := NewReservationService(repo).CanAccess(ctx, model.Identity{UserID: 2, Role: model.RoleAdmin}, 100)

		assert.True(t, ok)
		repo.AssertNotCalled(t, "FindByID", ctx, 100)
	})

	t.Run("本人放行、他人與查無資料都拒絕", func(t *testing.T) {
		repo := new(repoMocks.ReservationRepositoryMock)
		repo.On("FindByID", ctx, 100).Return(reservation, nil).Twice()
		repo.On("FindByID", ctx, 999).Return(nil, apperrors.ErrReservationNotFound).Once()

		svc := NewReservationService(repo)
		assert.True(t, svc.CanAccess(ctx, model.Identity{UserID: 7, Role: model.RoleUser}, 100))
		assert.False(t, svc.CanAccess(ctx, model.Identity{UserID: 8, Role: model.RoleUser}, 100))
		assert.False(t, svc.CanAccess(ctx, model.Identity{UserID: 7, Role: model.RoleUser}, 999))
	})
}

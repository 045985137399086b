package service

import (
	"context"
	"testing"
	"time"

	"campus-parking/internal/model"
	"campus-parking/internal/realtime"
	repoMocks "campus-parking/internal/repository/mocks"
	"campus-parking/internal/testutil"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// billingStub 同 package 測試不能引用 service/mocks（循環引用），改用本地 stub
type billingStub struct {
	chargedUserID int
	chargedHours  float64
	chargeTx      pgx.Tx
	result        *ChargeResult
	err           error
}

func (b *billingStub) ChargeUser(ctx context.Context, tx pgx.Tx, userID int, chargeHours float64) (*ChargeResult, error) {
	b.chargedUserID = userID
	b.chargedHours = chargeHours
	b.chargeTx = tx
	if b.err != nil {
		return nil, b.err
	}
	if b.result != nil {
		return b.result, nil
	}
	return &ChargeResult{Deductions: []Deduction{}}, nil
}

func (b *billingStub) TopUp(ctx context.Context, userID int, hours float64) (*model.Subscription, float64, error) {
	return nil, 0, nil
}

func (b *billingStub) GetBalance(ctx context.Context, userID int) (*BalanceResponse, error) {
	return nil, nil
}

type allocationFixture struct {
	db              *testutil.FakeDB
	reservationRepo *repoMocks.ReservationRepositoryMock
	spotRepo        *repoMocks.SpotRepositoryMock
	sectionRepo     *repoMocks.SectionRepositoryMock
	userRepo        *repoMocks.UserRepositoryMock
	billing         *billingStub
	publisher       *testutil.RecordingPublisher
	service         AllocationService
}

func newAllocationFixture() *allocationFixture {
	f := &allocationFixture{
		db:              &testutil.FakeDB{},
		reservationRepo: new(repoMocks.ReservationRepositoryMock),
		spotRepo:        new(repoMocks.SpotRepositoryMock),
		sectionRepo:     new(repoMocks.SectionRepositoryMock),
		userRepo:        new(repoMocks.UserRepositoryMock),
		billing:         &billingStub{},
		publisher:       &testutil.RecordingPublisher{},
	}
	f.service = NewAllocationService(
		f.db, f.reservationRepo, f.spotRepo, f.sectionRepo, f.userRepo,
		f.billing, f.publisher, nil,
	)
	return f
}

func TestAllocateSlotNumber(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		used     []int
		expected int
		wantErr  error
	}{
		{"空區段取 1", 5, nil, 1, nil},
		{"取最小空編號", 5, []int{1, 2, 4}, 3, nil},
		{"前段全滿取尾端", 3, []int{1, 2}, 3, nil},
		{"全滿", 3, []int{1, 2, 3}, 0, apperrors.ErrCapacityExceeded},
		{"容量為 0", 0, nil, 0, apperrors.ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := allocateSlotNumber(tt.total, tt.used)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAllocationService_ReserveSpot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - 鎖定車位、建立預約、commit 後才廣播", func(t *testing.T) {
		f := newAllocationFixture()

		spot := &model.ParkingSpot{ID: 3, AreaID: 1, Status: model.SpotStatusAvailable}
		spotID := 3
		created := &model.Reservation{
			ID: 100, UserID: 7, VehicleID: 2, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}

		f.spotRepo.On("FindByIDWithLock", ctx, mock.Anything, 3).Return(spot, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusReserved).Return(nil).Once()
		f.reservationRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(created, nil).Once()

		reservation, err := f.service.ReserveSpot(ctx, 7, model.ReserveSpotRequest{VehicleID: 2, SpotID: 3})

		require.NoError(t, err)
		assert.Equal(t, 100, reservation.ID)
		assert.True(t, f.db.LastTx().Committed)

		userEvents := f.publisher.EventsForRoom(realtime.UserRoom(7))
		require.Len(t, userEvents, 1)
		assert.Equal(t, realtime.EventReservationUpdated, userEvents[0].Type)

		areaEvents := f.publisher.EventsForRoom(realtime.AreaRoom(1))
		require.Len(t, areaEvents, 1)
		assert.Equal(t, realtime.EventSpotsUpdated, areaEvents[0].Type)
		assert.Equal(t, string(model.SpotStatusReserved), areaEvents[0].Status)

		f.spotRepo.AssertExpectations(t)
		f.reservationRepo.AssertExpectations(t)
	})

	t.Run("Failed - 車位已被搶走，交易回滾且不廣播", func(t *testing.T) {
		f := newAllocationFixture()

		spot := &model.ParkingSpot{ID: 3, AreaID: 1, Status: model.SpotStatusReserved}
		f.spotRepo.On("FindByIDWithLock", ctx, mock.Anything, 3).Return(spot, nil).Once()

		_, err := f.service.ReserveSpot(ctx, 7, model.ReserveSpotRequest{VehicleID: 2, SpotID: 3})

		assert.ErrorIs(t, err, apperrors.ErrSpotUnavailable)
		assert.True(t, f.db.LastTx().RolledBack)
		assert.Empty(t, f.publisher.Events)
		f.spotRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAllocationService_ReserveSectionSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - 取最小空編號並遞增 reserved_count", func(t *testing.T) {
		f := newAllocationFixture()

		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 4, ReservedCount: 1, ParkedCount: 1}
		sectionID := 5
		slotNumber := 2
		created := &model.Reservation{
			ID: 101, UserID: 7, AreaID: 1,
			SectionID: &sectionID, SlotNumber: &slotNumber,
			BookingStatus: model.BookingStatusReserved,
		}

		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Once()
		f.reservationRepo.On("UsedSlotNumbers", ctx, mock.Anything, 5).Return([]int{1, 3}, nil).Once()
		f.sectionRepo.On("AdjustCounters", ctx, mock.Anything, 5, 1, 0, 0).Return(nil).Once()
		f.reservationRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(r *model.Reservation) bool {
			return r.SlotNumber != nil && *r.SlotNumber == 2
		})).Return(created, nil).Once()

		reservation, err := f.service.ReserveSectionSlot(ctx, 7, model.ReserveSectionRequest{VehicleID: 2, SectionID: 5})

		require.NoError(t, err)
		assert.Equal(t, 2, *reservation.SlotNumber)
		assert.True(t, f.db.LastTx().Committed)
		f.sectionRepo.AssertExpectations(t)
		f.reservationRepo.AssertExpectations(t)
	})

	t.Run("Failed - 名額用罄", func(t *testing.T) {
		f := newAllocationFixture()

		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 2, ReservedCount: 1, ParkedCount: 1}
		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Once()

		_, err := f.service.ReserveSectionSlot(ctx, 7, model.ReserveSectionRequest{VehicleID: 2, SectionID: 5})

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
		assert.True(t, f.db.LastTx().RolledBack)
		f.sectionRepo.AssertNotCalled(t, "AdjustCounters",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAllocationService_AssignGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("Failed - spot 與 section 必須擇一", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AssignGuest(ctx, model.GuestAssignRequest{GuestName: "visitor", Plate: "ABC-123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

		_, err = f.service.AssignGuest(ctx, model.GuestAssignRequest{GuestName: "visitor", Plate: "ABC-123", SpotID: 1, SectionID: 2})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Success - 同一交易建立訪客、車輛與預約", func(t *testing.T) {
		f := newAllocationFixture()

		spot := &model.ParkingSpot{ID: 3, AreaID: 1, Status: model.SpotStatusAvailable}
		spotID := 3
		created := &model.Reservation{
			ID: 102, UserID: 50, VehicleID: 60, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}

		f.userRepo.On("CreateGuest", ctx, mock.Anything, "visitor").
			Return(&model.User{ID: 50, IsGuest: true}, nil).Once()
		f.spotRepo.On("FindByIDWithLock", ctx, mock.Anything, 3).Return(spot, nil).Once()
		f.userRepo.On("CreateVehicle", ctx, mock.Anything, 50, "ABC-123", "car").
			Return(&model.Vehicle{ID: 60, UserID: 50}, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusReserved).Return(nil).Once()
		f.reservationRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(created, nil).Once()

		reservation, err := f.service.AssignGuest(ctx, model.GuestAssignRequest{
			GuestName: "visitor", Plate: "ABC-123", SpotID: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 50, reservation.UserID)
		assert.True(t, f.db.LastTx().Committed)

		userEvents := f.publisher.EventsForRoom(realtime.UserRoom(50))
		require.Len(t, userEvents, 1)
		assert.Equal(t, realtime.SourceAttendant, userEvents[0].Source)

		f.userRepo.AssertExpectations(t)
	})
}

func TestAllocationService_CheckIn(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	owner := model.Identity{UserID: 7, Role: model.RoleUser}

	t.Run("Success - 車位預約報到後車位轉 occupied", func(t *testing.T) {
		f := newAllocationFixture()

		spotID := 3
		reserved := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}
		now := time.Now().UTC()
		active := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusActive, StartTime: &now,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(reserved, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(reserved, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 100, model.BookingStatusActive, mock.Anything).
			Return(active, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusOccupied).Return(nil).Once()

		got, err := f.service.CheckIn(ctx, uid, owner)

		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusActive, got.BookingStatus)
		assert.True(t, f.db.LastTx().Committed)

		areaEvents := f.publisher.EventsForRoom(realtime.AreaRoom(1))
		require.Len(t, areaEvents, 1)
		assert.Equal(t, string(model.SpotStatusOccupied), areaEvents[0].Status)
	})

	t.Run("Success - 區段預約報到把 reserved 移到 parked", func(t *testing.T) {
		f := newAllocationFixture()

		sectionID := 5
		slotNumber := 2
		reserved := &model.Reservation{
			ID: 101, ReservationUID: uid, UserID: 7, AreaID: 1,
			SectionID: &sectionID, SlotNumber: &slotNumber,
			BookingStatus: model.BookingStatusReserved,
		}
		active := &model.Reservation{
			ID: 101, ReservationUID: uid, UserID: 7, AreaID: 1,
			SectionID: &sectionID, SlotNumber: &slotNumber,
			BookingStatus: model.BookingStatusActive,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(reserved, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 101).Return(reserved, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 101, model.BookingStatusActive, mock.Anything).
			Return(active, nil).Once()
		f.sectionRepo.On("AdjustCounters", ctx, mock.Anything, 5, -1, 1, 0).Return(nil).Once()

		_, err := f.service.CheckIn(ctx, uid, owner)

		require.NoError(t, err)
		f.sectionRepo.AssertExpectations(t)
	})

	t.Run("Failed - 已被逾期處理搶先轉走", func(t *testing.T) {
		f := newAllocationFixture()

		spotID := 3
		reserved := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}
		invalid := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusInvalid,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(reserved, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(invalid, nil).Once()

		_, err := f.service.CheckIn(ctx, uid, owner)

		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.True(t, f.db.LastTx().RolledBack)
	})

	t.Run("Failed - 非本人且非管理端", func(t *testing.T) {
		f := newAllocationFixture()

		spotID := 3
		reserved := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}
		f.reservationRepo.On("FindByUID", ctx, uid).Return(reserved, nil).Once()

		_, err := f.service.CheckIn(ctx, uid, model.Identity{UserID: 8, Role: model.RoleUser})

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Empty(t, f.db.Txs)
	})
}

func TestAllocationService_CheckOut(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	owner := model.Identity{UserID: 7, Role: model.RoleUser}

	t.Run("Success - 釋放車位並在同一交易內扣款", func(t *testing.T) {
		f := newAllocationFixture()
		f.billing.result = &ChargeResult{NewBalance: 3}

		spotID := 3
		start := time.Now().UTC().Add(-2 * time.Hour)
		active := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusActive, StartTime: &start,
		}
		end := time.Now().UTC()
		completed := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusCompleted,
			StartTime: &start, EndTime: &end,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(active, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(active, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 100, model.BookingStatusCompleted, mock.Anything).
			Return(completed, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusAvailable).Return(nil).Once()

		got, charge, err := f.service.CheckOut(ctx, uid, owner)

		require.NoError(t, err)
		assert.Equal(t, model.BookingStatusCompleted, got.BookingStatus)
		assert.Equal(t, 3.0, charge.NewBalance)
		assert.True(t, f.db.LastTx().Committed)

		// 扣款必須發生在同一條交易上
		assert.Equal(t, 7, f.billing.chargedUserID)
		assert.Same(t, f.db.LastTx(), f.billing.chargeTx)
		assert.InDelta(t, 2.0, f.billing.chargedHours, 0.01)
	})

	t.Run("Failed - 尚未報到不能結束", func(t *testing.T) {
		f := newAllocationFixture()

		spotID := 3
		reserved := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusReserved,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(reserved, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(reserved, nil).Once()

		_, _, err := f.service.CheckOut(ctx, uid, owner)

		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.True(t, f.db.LastTx().RolledBack)
		assert.Zero(t, f.billing.chargedUserID)
	})

	t.Run("Failed - 扣款失敗時整筆回滾", func(t *testing.T) {
		f := newAllocationFixture()
		f.billing.err = apperrors.ErrInternalServerError

		spotID := 3
		start := time.Now().UTC().Add(-time.Hour)
		active := &model.Reservation{
			ID: 100, ReservationUID: uid, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusActive, StartTime: &start,
		}

		f.reservationRepo.On("FindByUID", ctx, uid).Return(active, nil).Once()
		f.reservationRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(active, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 100, model.BookingStatusCompleted, mock.Anything).
			Return(active, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusAvailable).Return(nil).Once()

		_, _, err := f.service.CheckOut(ctx, uid, owner)

		assert.ErrorIs(t, err, apperrors.ErrInternalServerError)
		assert.True(t, f.db.LastTx().RolledBack)
		assert.Empty(t, f.publisher.Events)
	})
}

func TestAllocationService_ReleaseSpot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - 已是 available 的釋放是冪等 no-op", func(t *testing.T) {
		f := newAllocationFixture()

		spot := &model.ParkingSpot{ID: 3, AreaID: 1, Status: model.SpotStatusAvailable}
		f.spotRepo.On("FindByIDWithLock", ctx, mock.Anything, 3).Return(spot, nil).Once()

		err := f.service.ReleaseSpot(ctx, 3)

		require.NoError(t, err)
		assert.True(t, f.db.LastTx().Committed)
		assert.Empty(t, f.publisher.Events)
		f.reservationRepo.AssertNotCalled(t, "FindActiveBySpot", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - 強制結束占用中的預約", func(t *testing.T) {
		f := newAllocationFixture()

		spotID := 3
		spot := &model.ParkingSpot{ID: 3, AreaID: 1, Status: model.SpotStatusOccupied}
		active := &model.Reservation{
			ID: 100, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusActive,
		}
		completed := &model.Reservation{
			ID: 100, UserID: 7, AreaID: 1,
			SpotID: &spotID, BookingStatus: model.BookingStatusCompleted,
		}

		f.spotRepo.On("FindByIDWithLock", ctx, mock.Anything, 3).Return(spot, nil).Once()
		f.reservationRepo.On("FindActiveBySpot", ctx, mock.Anything, 3).Return(active, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 100, model.BookingStatusCompleted, mock.Anything).
			Return(completed, nil).Once()
		f.spotRepo.On("UpdateStatus", ctx, mock.Anything, 3, model.SpotStatusAvailable).Return(nil).Once()

		err := f.service.ReleaseSpot(ctx, 3)

		require.NoError(t, err)
		assert.True(t, f.db.LastTx().Committed)

		userEvents := f.publisher.EventsForRoom(realtime.UserRoom(7))
		require.Len(t, userEvents, 1)
		assert.Equal(t, realtime.SourceAttendant, userEvents[0].Source)
	})
}

func TestAllocationService_ReleaseSectionSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - 編號無人占用是冪等 no-op", func(t *testing.T) {
		f := newAllocationFixture()

		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 4}
		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Once()
		f.reservationRepo.On("FindActiveBySectionSlot", ctx, mock.Anything, 5, 2).
			Return(nil, apperrors.ErrReservationNotFound).Once()

		err := f.service.ReleaseSectionSlot(ctx, 5, 2)

		require.NoError(t, err)
		assert.True(t, f.db.LastTx().Committed)
		assert.Empty(t, f.publisher.Events)
	})

	t.Run("Success - 已停放的釋放扣 parked_count", func(t *testing.T) {
		f := newAllocationFixture()

		sectionID := 5
		slotNumber := 2
		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 4, ParkedCount: 1}
		active := &model.Reservation{
			ID: 101, UserID: 7, AreaID: 1,
			SectionID: &sectionID, SlotNumber: &slotNumber,
			BookingStatus: model.BookingStatusActive,
		}
		completed := &model.Reservation{
			ID: 101, UserID: 7, AreaID: 1,
			SectionID: &sectionID, SlotNumber: &slotNumber,
			BookingStatus: model.BookingStatusCompleted,
		}

		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Once()
		f.reservationRepo.On("FindActiveBySectionSlot", ctx, mock.Anything, 5, 2).Return(active, nil).Once()
		f.reservationRepo.On("UpdateStatusWithLock", ctx, mock.Anything, 101, model.BookingStatusCompleted, mock.Anything).
			Return(completed, nil).Once()
		f.sectionRepo.On("AdjustCounters", ctx, mock.Anything, 5, 0, -1, 0).Return(nil).Once()

		err := f.service.ReleaseSectionSlot(ctx, 5, 2)

		require.NoError(t, err)
		f.sectionRepo.AssertExpectations(t)
	})
}

func TestAllocationService_WithdrawSectionSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("Failed - 沒有剩餘名額可抽", func(t *testing.T) {
		f := newAllocationFixture()

		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 2, ReservedCount: 1, ParkedCount: 1}
		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Once()

		err := f.service.WithdrawSectionSlot(ctx, 5)

		assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
		assert.True(t, f.db.LastTx().RolledBack)
	})

	t.Run("Success - 抽走與歸還各動 unavailable_count 一格", func(t *testing.T) {
		f := newAllocationFixture()

		section := &model.ParkingSection{ID: 5, AreaID: 1, TotalCapacity: 4, UnavailableCount: 1}
		f.sectionRepo.On("FindByIDWithLock", ctx, mock.Anything, 5).Return(section, nil).Twice()
		f.sectionRepo.On("AdjustCounters", ctx, mock.Anything, 5, 0, 0, 1).Return(nil).Once()
		f.sectionRepo.On("AdjustCounters", ctx, mock.Anything, 5, 0, 0, -1).Return(nil).Once()

		require.NoError(t, f.service.WithdrawSectionSlot(ctx, 5))
		require.NoError(t, f.service.RestoreSectionSlot(ctx, 5))

		f.sectionRepo.AssertExpectations(t)
	})
}

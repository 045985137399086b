package mocks

import (
	"context"

	"campus-parking/internal/model"
	"campus-parking/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type BillingServiceMock struct {
	mock.Mock
}

func (m *BillingServiceMock) ChargeUser(ctx context.Context, tx pgx.Tx, userID int, chargeHours float64) (*service.ChargeResult, error) {
	args := m.Called(ctx, tx, userID, chargeHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChargeResult), args.Error(1)
}

func (m *BillingServiceMock) TopUp(ctx context.Context, userID int, hours float64) (*model.Subscription, float64, error) {
	args := m.Called(ctx, userID, hours)
	if args.Get(0) == nil {
		return nil, args.Get(1).(float64), args.Error(2)
	}
	return args.Get(0).(*model.Subscription), args.Get(1).(float64), args.Error(2)
}

func (m *BillingServiceMock) GetBalance(ctx context.Context, userID int) (*service.BalanceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BalanceResponse), args.Error(1)
}

type AllocationServiceMock struct {
	mock.Mock
}

func (m *AllocationServiceMock) ReserveSpot(ctx context.Context, userID int, req model.ReserveSpotRequest) (*model.Reservation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *AllocationServiceMock) ReserveSectionSlot(ctx context.Context, userID int, req model.ReserveSectionRequest) (*model.Reservation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *AllocationServiceMock) AssignGuest(ctx context.Context, req model.GuestAssignRequest) (*model.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *AllocationServiceMock) CheckIn(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, error) {
	args := m.Called(ctx, reservationUID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *AllocationServiceMock) CheckOut(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, *service.ChargeResult, error) {
	args := m.Called(ctx, reservationUID, identity)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Reservation), args.Get(1).(*service.ChargeResult), args.Error(2)
}

func (m *AllocationServiceMock) Cancel(ctx context.Context, reservationID int, identity model.Identity) (*model.Reservation, error) {
	args := m.Called(ctx, reservationID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *AllocationServiceMock) ReleaseSpot(ctx context.Context, spotID int) error {
	args := m.Called(ctx, spotID)
	return args.Error(0)
}

func (m *AllocationServiceMock) ReleaseSectionSlot(ctx context.Context, sectionID int, slotNumber int) error {
	args := m.Called(ctx, sectionID, slotNumber)
	return args.Error(0)
}

func (m *AllocationServiceMock) SetSpotUnavailable(ctx context.Context, spotID int) error {
	args := m.Called(ctx, spotID)
	return args.Error(0)
}

func (m *AllocationServiceMock) SetSpotAvailable(ctx context.Context, spotID int) error {
	args := m.Called(ctx, spotID)
	return args.Error(0)
}

func (m *AllocationServiceMock) WithdrawSectionSlot(ctx context.Context, sectionID int) error {
	args := m.Called(ctx, sectionID)
	return args.Error(0)
}

func (m *AllocationServiceMock) RestoreSectionSlot(ctx context.Context, sectionID int) error {
	args := m.Called(ctx, sectionID)
	return args.Error(0)
}

func (m *AllocationServiceMock) SectionAvailability(ctx context.Context, sectionID int) (*model.SectionAvailabilityResponse, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SectionAvailabilityResponse), args.Error(1)
}

type ReservationServiceMock struct {
	mock.Mock
}

func (m *ReservationServiceMock) GetByID(ctx context.Context, id int, identity model.Identity) (*model.Reservation, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationServiceMock) ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *ReservationServiceMock) CanAccess(ctx context.Context, identity model.Identity, reservationID int) bool {
	args := m.Called(ctx, identity, reservationID)
	return args.Bool(0)
}

package mocks

import (
	"context"
	"time"

	"campus-parking/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ReservationRepositoryMock struct {
	mock.Mock
}

func (m *ReservationRepositoryMock) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) FindExpired(ctx context.Context, cutoff time.Time) ([]*model.Reservation, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	args := m.Called(ctx, tx, reservation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus, now time.Time) (*model.Reservation, error) {
	args := m.Called(ctx, tx, id, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) FindActiveBySpot(ctx context.Context, tx pgx.Tx, spotID int) (*model.Reservation, error) {
	args := m.Called(ctx, tx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) FindActiveBySectionSlot(ctx context.Context, tx pgx.Tx, sectionID int, slotNumber int) (*model.Reservation, error) {
	args := m.Called(ctx, tx, sectionID, slotNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *ReservationRepositoryMock) UsedSlotNumbers(ctx context.Context, tx pgx.Tx, sectionID int) ([]int, error) {
	args := m.Called(ctx, tx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type SpotRepositoryMock struct {
	mock.Mock
}

func (m *SpotRepositoryMock) FindByID(ctx context.Context, id int) (*model.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSpot), args.Error(1)
}

func (m *SpotRepositoryMock) ListBySection(ctx context.Context, sectionID int) ([]*model.ParkingSpot, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParkingSpot), args.Error(1)
}

func (m *SpotRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSpot, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSpot), args.Error(1)
}

func (m *SpotRepositoryMock) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.SpotStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

type SectionRepositoryMock struct {
	mock.Mock
}

func (m *SectionRepositoryMock) FindByID(ctx context.Context, id int) (*model.ParkingSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSection), args.Error(1)
}

func (m *SectionRepositoryMock) ListByArea(ctx context.Context, areaID int) ([]*model.ParkingSection, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ParkingSection), args.Error(1)
}

func (m *SectionRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSection, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSection), args.Error(1)
}

func (m *SectionRepositoryMock) AdjustCounters(ctx context.Context, tx pgx.Tx, id int, deltaReserved, deltaParked, deltaUnavailable int) error {
	args := m.Called(ctx, tx, id, deltaReserved, deltaParked, deltaUnavailable)
	return args.Error(0)
}

func (m *SectionRepositoryMock) SetStatus(ctx context.Context, tx pgx.Tx, id int, status model.SectionStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}

func (m *SectionRepositoryMock) RecomputeCounters(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type SubscriptionRepositoryMock struct {
	mock.Mock
}

func (m *SubscriptionRepositoryMock) ListByUser(ctx context.Context, userID int) ([]*model.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

func (m *SubscriptionRepositoryMock) ListPenaltiesByUser(ctx context.Context, userID int) ([]*model.Penalty, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Penalty), args.Error(1)
}

func (m *SubscriptionRepositoryMock) FindActiveForUpdate(ctx context.Context, tx pgx.Tx, userID int) ([]*model.Subscription, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

func (m *SubscriptionRepositoryMock) Deduct(ctx context.Context, tx pgx.Tx, id int, hours float64) error {
	args := m.Called(ctx, tx, id, hours)
	return args.Error(0)
}

func (m *SubscriptionRepositoryMock) Create(ctx context.Context, tx pgx.Tx, subscription *model.Subscription) (*model.Subscription, error) {
	args := m.Called(ctx, tx, subscription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *SubscriptionRepositoryMock) CreatePenalty(ctx context.Context, tx pgx.Tx, userID int, penaltyHours float64) error {
	args := m.Called(ctx, tx, userID, penaltyHours)
	return args.Error(0)
}

func (m *SubscriptionRepositoryMock) RecomputeBalance(ctx context.Context, tx pgx.Tx, userID int) (float64, error) {
	args := m.Called(ctx, tx, userID)
	return args.Get(0).(float64), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepositoryMock) CreateGuest(ctx context.Context, tx pgx.Tx, name string) (*model.User, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepositoryMock) CreateVehicle(ctx context.Context, tx pgx.Tx, userID int, plate, vehicleType string) (*model.Vehicle, error) {
	args := m.Called(ctx, tx, userID, plate, vehicleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

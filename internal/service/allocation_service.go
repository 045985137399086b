package service

import (
	"context"
	"time"

	"campus-parking/internal/cache"
	"campus-parking/internal/model"
	"campus-parking/internal/realtime"
	"campus-parking/internal/repository"
	apperrors "campus-parking/pkg/app_errors"
	"campus-parking/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AllocationService 車位與區段占用狀態的唯一寫入者（sweeper 之外）。
// 每個變更操作都是一條短交易：先用行鎖重讀現況再決定成敗，
// check-then-act 必須發生在鎖內，兩個並發請求才不會同時搶到同一個名額
type AllocationService interface {
	ReserveSpot(ctx context.Context, userID int, req model.ReserveSpotRequest) (*model.Reservation, error)
	ReserveSectionSlot(ctx context.Context, userID int, req model.ReserveSectionRequest) (*model.Reservation, error)
	// AssignGuest 管理員代客預約：同一條交易內建立訪客與車輛再走預約路徑
	AssignGuest(ctx context.Context, req model.GuestAssignRequest) (*model.Reservation, error)

	// QR 掃碼報到／結束
	CheckIn(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, error)
	CheckOut(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, *ChargeResult, error)
	Cancel(ctx context.Context, reservationID int, identity model.Identity) (*model.Reservation, error)

	// ReleaseSpot / ReleaseSectionSlot 冪等：釋放已經 available 的目標是 no-op 成功
	ReleaseSpot(ctx context.Context, spotID int) error
	ReleaseSectionSlot(ctx context.Context, sectionID int, slotNumber int) error

	// 管理端停用／恢復，不影響進行中的預約
	SetSpotUnavailable(ctx context.Context, spotID int) error
	SetSpotAvailable(ctx context.Context, spotID int) error
	WithdrawSectionSlot(ctx context.Context, sectionID int) error
	RestoreSectionSlot(ctx context.Context, sectionID int) error

	SectionAvailability(ctx context.Context, sectionID int) (*model.SectionAvailabilityResponse, error)
}

type AllocationServiceImpl struct {
	db              DB
	reservationRepo repository.ReservationRepository
	spotRepo        repository.SpotRepository
	sectionRepo     repository.SectionRepository
	userRepo        repository.UserRepository
	billing         BillingService
	publisher       realtime.Publisher
	availability    cache.SectionAvailabilityCache
}

func NewAllocationService(
	db DB,
	reservationRepo repository.ReservationRepository,
	spotRepo repository.SpotRepository,
	sectionRepo repository.SectionRepository,
	userRepo repository.UserRepository,
	billing BillingService,
	publisher realtime.Publisher,
	availability cache.SectionAvailabilityCache,
) AllocationService {
	return &AllocationServiceImpl{
		db:              db,
		reservationRepo: reservationRepo,
		spotRepo:        spotRepo,
		sectionRepo:     sectionRepo,
		userRepo:        userRepo,
		billing:         billing,
		publisher:       publisher,
		availability:    availability,
	}
}

// allocateSlotNumber 掃 1..totalCapacity 找第一個沒被有效預約占用的虛擬編號，
// 取最小可用編號（tie-break 固定，並發下由區段行鎖保證穩定）
func allocateSlotNumber(totalCapacity int, used []int) (int, error) {
	taken := make(map[int]bool, len(used))
	for _, n := range used {
		taken[n] = true
	}

	for n := 1; n <= totalCapacity; n++ {
		if !taken[n] {
			return n, nil
		}
	}

	return 0, apperrors.ErrCapacityExceeded
}

func (s *AllocationServiceImpl) ReserveSpot(ctx context.Context, userID int, req model.ReserveSpotRequest) (*model.Reservation, error) {
	reservation, err := s.reserveSpotTx(ctx, userID, req.VehicleID, req.SpotID)
	if err != nil {
		return nil, err
	}

	s.publishReservation(reservation, realtime.SourceUser)
	return reservation, nil
}

func (s *AllocationServiceImpl) reserveSpotTx(ctx context.Context, userID, vehicleID, spotID int) (*model.Reservation, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	spot, err := s.spotRepo.FindByIDWithLock(ctx, tx, spotID)
	if err != nil {
		return nil, err
	}

	if spot.Status != model.SpotStatusAvailable {
		return nil, apperrors.ErrSpotUnavailable
	}

	if err := s.spotRepo.UpdateStatus(ctx, tx, spot.ID, model.SpotStatusReserved); err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.Create(ctx, tx, &model.Reservation{
		ReservationUID: uuid.New(),
		UserID:         userID,
		VehicleID:      vehicleID,
		AreaID:         spot.AreaID,
		SpotID:         &spot.ID,
		BookingStatus:  model.BookingStatusReserved,
		TimeStamp:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return reservation, nil
}

func (s *AllocationServiceImpl) ReserveSectionSlot(ctx context.Context, userID int, req model.ReserveSectionRequest) (*model.Reservation, error) {
	reservation, err := s.reserveSectionTx(ctx, userID, req.VehicleID, req.SectionID)
	if err != nil {
		return nil, err
	}

	s.publishReservation(reservation, realtime.SourceUser)
	s.refreshAvailability(req.SectionID)
	return reservation, nil
}

func (s *AllocationServiceImpl) reserveSectionTx(ctx context.Context, userID, vehicleID, sectionID int) (*model.Reservation, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	section, err := s.sectionRepo.FindByIDWithLock(ctx, tx, sectionID)
	if err != nil {
		return nil, err
	}

	if !section.HasCapacity() {
		return nil, apperrors.ErrCapacityExceeded
	}

	used, err := s.reservationRepo.UsedSlotNumbers(ctx, tx, section.ID)
	if err != nil {
		return nil, err
	}

	slotNumber, err := allocateSlotNumber(section.TotalCapacity, used)
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.AdjustCounters(ctx, tx, section.ID, 1, 0, 0); err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.Create(ctx, tx, &model.Reservation{
		ReservationUID: uuid.New(),
		UserID:         userID,
		VehicleID:      vehicleID,
		AreaID:         section.AreaID,
		SectionID:      &section.ID,
		SlotNumber:     &slotNumber,
		BookingStatus:  model.BookingStatusReserved,
		TimeStamp:      time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return reservation, nil
}

func (s *AllocationServiceImpl) AssignGuest(ctx context.Context, req model.GuestAssignRequest) (*model.Reservation, error) {
	if (req.SpotID == 0) == (req.SectionID == 0) {
		return nil, apperrors.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	guest, err := s.userRepo.CreateGuest(ctx, tx, req.GuestName)
	if err != nil {
		return nil, err
	}

	var reservation *model.Reservation

	if req.SpotID != 0 {
		spot, err := s.spotRepo.FindByIDWithLock(ctx, tx, req.SpotID)
		if err != nil {
			return nil, err
		}
		if spot.Status != model.SpotStatusAvailable {
			return nil, apperrors.ErrSpotUnavailable
		}

		vehicle, err := s.userRepo.CreateVehicle(ctx, tx, guest.ID, req.Plate, "car")
		if err != nil {
			return nil, err
		}

		if err := s.spotRepo.UpdateStatus(ctx, tx, spot.ID, model.SpotStatusReserved); err != nil {
			return nil, err
		}

		reservation, err = s.reservationRepo.Create(ctx, tx, &model.Reservation{
			ReservationUID: uuid.New(),
			UserID:         guest.ID,
			VehicleID:      vehicle.ID,
			AreaID:         spot.AreaID,
			SpotID:         &spot.ID,
			BookingStatus:  model.BookingStatusReserved,
			TimeStamp:      time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	} else {
		section, err := s.sectionRepo.FindByIDWithLock(ctx, tx, req.SectionID)
		if err != nil {
			return nil, err
		}
		if !section.HasCapacity() {
			return nil, apperrors.ErrCapacityExceeded
		}

		vehicle, err := s.userRepo.CreateVehicle(ctx, tx, guest.ID, req.Plate, section.VehicleType)
		if err != nil {
			return nil, err
		}

		used, err := s.reservationRepo.UsedSlotNumbers(ctx, tx, section.ID)
		if err != nil {
			return nil, err
		}
		slotNumber, err := allocateSlotNumber(section.TotalCapacity, used)
		if err != nil {
			return nil, err
		}

		if err := s.sectionRepo.AdjustCounters(ctx, tx, section.ID, 1, 0, 0); err != nil {
			return nil, err
		}

		reservation, err = s.reservationRepo.Create(ctx, tx, &model.Reservation{
			ReservationUID: uuid.New(),
			UserID:         guest.ID,
			VehicleID:      vehicle.ID,
			AreaID:         section.AreaID,
			SectionID:      &section.ID,
			SlotNumber:     &slotNumber,
			BookingStatus:  model.BookingStatusReserved,
			TimeStamp:      time.Now().UTC(),
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishReservation(reservation, realtime.SourceAttendant)
	if reservation.IsSectionBooking() {
		s.refreshAvailability(*reservation.SectionID)
	}
	return reservation, nil
}

func (s *AllocationServiceImpl) CheckIn(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByUID(ctx, reservationUID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != identity.UserID && !identity.IsPrivileged() {
		return nil, apperrors.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 鎖內重讀並驗證轉換，才不會跟 sweeper 的逾期處理互踩
	locked, err := s.reservationRepo.FindByIDWithLock(ctx, tx, reservation.ID)
	if err != nil {
		return nil, err
	}
	if !locked.BookingStatus.CanTransitionTo(model.BookingStatusActive) {
		return nil, apperrors.ErrInvalidTransition
	}

	updated, err := s.reservationRepo.UpdateStatusWithLock(ctx, tx, locked.ID, model.BookingStatusActive, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if updated.SpotID != nil {
		if err := s.spotRepo.UpdateStatus(ctx, tx, *updated.SpotID, model.SpotStatusOccupied); err != nil {
			return nil, err
		}
	} else if updated.SectionID != nil {
		// reserved → parked
		if err := s.sectionRepo.AdjustCounters(ctx, tx, *updated.SectionID, -1, 1, 0); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishReservation(updated, realtime.SourceUser)
	if updated.IsSectionBooking() {
		s.refreshAvailability(*updated.SectionID)
	}
	return updated, nil
}

func (s *AllocationServiceImpl) CheckOut(ctx context.Context, reservationUID uuid.UUID, identity model.Identity) (*model.Reservation, *ChargeResult, error) {
	reservation, err := s.reservationRepo.FindByUID(ctx, reservationUID)
	if err != nil {
		return nil, nil, err
	}

	if reservation.UserID != identity.UserID && !identity.IsPrivileged() {
		return nil, nil, apperrors.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	locked, err := s.reservationRepo.FindByIDWithLock(ctx, tx, reservation.ID)
	if err != nil {
		return nil, nil, err
	}
	if locked.BookingStatus != model.BookingStatusActive {
		return nil, nil, apperrors.ErrInvalidTransition
	}

	now := time.Now().UTC()
	updated, err := s.reservationRepo.UpdateStatusWithLock(ctx, tx, locked.ID, model.BookingStatusCompleted, now)
	if err != nil {
		return nil, nil, err
	}

	if updated.SpotID != nil {
		if err := s.spotRepo.UpdateStatus(ctx, tx, *updated.SpotID, model.SpotStatusAvailable); err != nil {
			return nil, nil, err
		}
	} else if updated.SectionID != nil {
		if err := s.sectionRepo.AdjustCounters(ctx, tx, *updated.SectionID, 0, -1, 0); err != nil {
			return nil, nil, err
		}
	}

	// 扣停放時數：與狀態轉換同一條交易，全有或全無
	charge, err := s.billing.ChargeUser(ctx, tx, updated.UserID, updated.ParkedHours(now))
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	s.publishReservation(updated, realtime.SourceUser)
	if updated.IsSectionBooking() {
		s.refreshAvailability(*updated.SectionID)
	}
	return updated, charge, nil
}

func (s *AllocationServiceImpl) Cancel(ctx context.Context, reservationID int, identity model.Identity) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != identity.UserID && !identity.IsPrivileged() {
		return nil, apperrors.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := s.reservationRepo.UpdateStatusWithLock(ctx, tx, reservationID, model.BookingStatusCancelled, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if updated.SpotID != nil {
		if err := s.spotRepo.UpdateStatus(ctx, tx, *updated.SpotID, model.SpotStatusAvailable); err != nil {
			return nil, err
		}
	} else if updated.SectionID != nil {
		if err := s.sectionRepo.AdjustCounters(ctx, tx, *updated.SectionID, -1, 0, 0); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	source := realtime.SourceUser
	if identity.IsPrivileged() {
		source = realtime.SourceAttendant
	}
	s.publishReservation(updated, source)
	if updated.IsSectionBooking() {
		s.refreshAvailability(*updated.SectionID)
	}
	return updated, nil
}

func (s *AllocationServiceImpl) ReleaseSpot(ctx context.Context, spotID int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	spot, err := s.spotRepo.FindByIDWithLock(ctx, tx, spotID)
	if err != nil {
		return err
	}

	// 已是 available 的釋放是 no-op 成功，不是錯誤
	if spot.Status == model.SpotStatusAvailable {
		return tx.Commit(ctx)
	}

	var released *model.Reservation
	active, err := s.reservationRepo.FindActiveBySpot(ctx, tx, spotID)
	if err != nil && err != apperrors.ErrReservationNotFound {
		return err
	}
	if active != nil {
		released, err = s.reservationRepo.UpdateStatusWithLock(ctx, tx, active.ID, model.BookingStatusCompleted, time.Now().UTC())
		if err != nil {
			return err
		}
	}

	if err := s.spotRepo.UpdateStatus(ctx, tx, spotID, model.SpotStatusAvailable); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publisher.Publish(realtime.AreaRoom(spot.AreaID), realtime.Event{
		Type:   realtime.EventSpotsUpdated,
		AreaID: spot.AreaID,
		SpotID: spot.ID,
		Status: string(model.SpotStatusAvailable),
		Source: realtime.SourceAttendant,
	})
	if released != nil {
		s.publisher.Publish(realtime.UserRoom(released.UserID), realtime.Event{
			Type:          realtime.EventReservationUpdated,
			AreaID:        released.AreaID,
			ReservationID: released.ID,
			SpotID:        spot.ID,
			Status:        string(released.BookingStatus),
			Source:        realtime.SourceAttendant,
		})
	}
	return nil
}

func (s *AllocationServiceImpl) ReleaseSectionSlot(ctx context.Context, sectionID int, slotNumber int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	section, err := s.sectionRepo.FindByIDWithLock(ctx, tx, sectionID)
	if err != nil {
		return err
	}

	active, err := s.reservationRepo.FindActiveBySectionSlot(ctx, tx, sectionID, slotNumber)
	if err != nil {
		if err == apperrors.ErrReservationNotFound {
			// 編號沒人占用：冪等 no-op
			return tx.Commit(ctx)
		}
		return err
	}

	wasParked := active.BookingStatus == model.BookingStatusActive

	released, err := s.reservationRepo.UpdateStatusWithLock(ctx, tx, active.ID, model.BookingStatusCompleted, time.Now().UTC())
	if err != nil {
		return err
	}

	if wasParked {
		err = s.sectionRepo.AdjustCounters(ctx, tx, sectionID, 0, -1, 0)
	} else {
		err = s.sectionRepo.AdjustCounters(ctx, tx, sectionID, -1, 0, 0)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publisher.Publish(realtime.AreaRoom(section.AreaID), realtime.Event{
		Type:       realtime.EventCapacityUpdated,
		AreaID:     section.AreaID,
		SectionID:  sectionID,
		SlotNumber: slotNumber,
		Status:     string(model.SectionStatusAvailable),
		Source:     realtime.SourceAttendant,
	})
	s.publisher.Publish(realtime.UserRoom(released.UserID), realtime.Event{
		Type:          realtime.EventReservationUpdated,
		AreaID:        released.AreaID,
		ReservationID: released.ID,
		SectionID:     sectionID,
		Status:        string(released.BookingStatus),
		Source:        realtime.SourceAttendant,
	})
	s.refreshAvailability(sectionID)
	return nil
}

func (s *AllocationServiceImpl) SetSpotUnavailable(ctx context.Context, spotID int) error {
	return s.setSpotStatus(ctx, spotID, model.SpotStatusAvailable, model.SpotStatusUnavailable)
}

func (s *AllocationServiceImpl) SetSpotAvailable(ctx context.Context, spotID int) error {
	return s.setSpotStatus(ctx, spotID, model.SpotStatusUnavailable, model.SpotStatusAvailable)
}

func (s *AllocationServiceImpl) setSpotStatus(ctx context.Context, spotID int, from, to model.SpotStatus) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	spot, err := s.spotRepo.FindByIDWithLock(ctx, tx, spotID)
	if err != nil {
		return err
	}

	if spot.Status == to {
		return tx.Commit(ctx)
	}
	if spot.Status != from {
		// 被預約或占用中的車位不能由管理端直接改狀態
		return apperrors.ErrSpotUnavailable
	}

	if err := s.spotRepo.UpdateStatus(ctx, tx, spotID, to); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publisher.Publish(realtime.AreaRoom(spot.AreaID), realtime.Event{
		Type:   realtime.EventSpotsUpdated,
		AreaID: spot.AreaID,
		SpotID: spotID,
		Status: string(to),
		Source: realtime.SourceAttendant,
	})
	return nil
}

// WithdrawSectionSlot 從區段抽走一個名額（unavailable_count +1），受容量上限保護
func (s *AllocationServiceImpl) WithdrawSectionSlot(ctx context.Context, sectionID int) error {
	return s.adjustSectionUnavailable(ctx, sectionID, 1)
}

// RestoreSectionSlot 歸還一個被抽走的名額（unavailable_count -1，夾在 0）
func (s *AllocationServiceImpl) RestoreSectionSlot(ctx context.Context, sectionID int) error {
	return s.adjustSectionUnavailable(ctx, sectionID, -1)
}

func (s *AllocationServiceImpl) adjustSectionUnavailable(ctx context.Context, sectionID int, delta int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	section, err := s.sectionRepo.FindByIDWithLock(ctx, tx, sectionID)
	if err != nil {
		return err
	}

	if delta > 0 && section.RemainingCapacity() < delta {
		return apperrors.ErrCapacityExceeded
	}

	if err := s.sectionRepo.AdjustCounters(ctx, tx, sectionID, 0, 0, delta); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publisher.Publish(realtime.AreaRoom(section.AreaID), realtime.Event{
		Type:      realtime.EventCapacityUpdated,
		AreaID:    section.AreaID,
		SectionID: sectionID,
		Status:    string(section.Status),
		Source:    realtime.SourceAttendant,
	})
	s.refreshAvailability(sectionID)
	return nil
}

func (s *AllocationServiceImpl) SectionAvailability(ctx context.Context, sectionID int) (*model.SectionAvailabilityResponse, error) {
	section, err := s.sectionRepo.FindByID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	return &model.SectionAvailabilityResponse{
		SectionID:        section.ID,
		AreaID:           section.AreaID,
		VehicleType:      section.VehicleType,
		TotalCapacity:    section.TotalCapacity,
		Remaining:        section.RemainingCapacity(),
		ReservedCount:    section.ReservedCount,
		ParkedCount:      section.ParkedCount,
		UnavailableCount: section.UnavailableCount,
		Status:           string(section.Status),
	}, nil
}

// publishReservation commit 之後才廣播，訂閱端不會看到可能回滾的狀態
func (s *AllocationServiceImpl) publishReservation(reservation *model.Reservation, source string) {
	event := realtime.Event{
		Type:          realtime.EventReservationUpdated,
		AreaID:        reservation.AreaID,
		ReservationID: reservation.ID,
		Status:        string(reservation.BookingStatus),
		Source:        source,
	}
	if reservation.SpotID != nil {
		event.SpotID = *reservation.SpotID
	}
	if reservation.SectionID != nil {
		event.SectionID = *reservation.SectionID
	}
	if reservation.SlotNumber != nil {
		event.SlotNumber = *reservation.SlotNumber
	}

	s.publisher.Publish(realtime.UserRoom(reservation.UserID), event)
	s.publisher.Publish(realtime.ReservationRoom(reservation.ID), event)

	if reservation.SpotID != nil {
		spotStatus := spotStatusForBooking(reservation.BookingStatus)
		s.publisher.Publish(realtime.AreaRoom(reservation.AreaID), realtime.Event{
			Type:   realtime.EventSpotsUpdated,
			AreaID: reservation.AreaID,
			SpotID: *reservation.SpotID,
			Status: string(spotStatus),
			Source: source,
		})
	} else {
		s.publisher.Publish(realtime.AreaRoom(reservation.AreaID), realtime.Event{
			Type:      realtime.EventCapacityUpdated,
			AreaID:    reservation.AreaID,
			SectionID: *reservation.SectionID,
			Status:    string(reservation.BookingStatus),
			Source:    source,
		})
	}
}

func spotStatusForBooking(status model.BookingStatus) model.SpotStatus {
	switch status {
	case model.BookingStatusReserved:
		return model.SpotStatusReserved
	case model.BookingStatusActive:
		return model.SpotStatusOccupied
	default:
		return model.SpotStatusAvailable
	}
}

// refreshAvailability 快取刷新失敗只記 log，快照是提示不是權威資料
func (s *AllocationServiceImpl) refreshAvailability(sectionID int) {
	if s.availability == nil {
		return
	}

	ctx := context.Background()
	section, err := s.sectionRepo.FindByID(ctx, sectionID)
	if err != nil {
		logger.WithComponent("allocation").Warn("availability refresh read failed",
			zap.Int("section_id", sectionID), zap.Error(err))
		return
	}
	if err := s.availability.Refresh(ctx, section); err != nil {
		logger.WithComponent("allocation").Warn("availability refresh failed",
			zap.Int("section_id", sectionID), zap.Error(err))
	}
}

package repository

import (
	"context"
	"fmt"
	"time"

	"campus-parking/internal/model"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `
	id, reservation_uid, user_id, vehicle_id, area_id, spot_id, section_id, slot_number,
	booking_status, time_stamp, start_time, end_time, waiting_end_time, created_at, updated_at`

type ReservationRepository interface {
	FindByID(ctx context.Context, id int) (*model.Reservation, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error)
	// FindExpired 撈出逾期未報到的預約：reserved、start_time 為 NULL、time_stamp 早於 cutoff
	FindExpired(ctx context.Context, cutoff time.Time) ([]*model.Reservation, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error)
	UpdateStatusWithLock(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus, now time.Time) (*model.Reservation, error)
	FindActiveBySpot(ctx context.Context, tx pgx.Tx, spotID int) (*model.Reservation, error)
	FindActiveBySectionSlot(ctx context.Context, tx pgx.Tx, sectionID int, slotNumber int) (*model.Reservation, error)
	UsedSlotNumbers(ctx context.Context, tx pgx.Tx, sectionID int) ([]int, error)
}

type ReservationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &ReservationRepositoryImpl{
		pool: pool,
	}
}

type reservationScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row reservationScanner) (*model.Reservation, error) {
	var r model.Reservation
	err := row.Scan(
		&r.ID,
		&r.ReservationUID,
		&r.UserID,
		&r.VehicleID,
		&r.AreaID,
		&r.SpotID,
		&r.SectionID,
		&r.SlotNumber,
		&r.BookingStatus,
		&r.TimeStamp,
		&r.StartTime,
		&r.EndTime,
		&r.WaitingEndTime,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *ReservationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, reservation *model.Reservation) (*model.Reservation, error) {
	query := `
		INSERT INTO reservations (
			reservation_uid, user_id, vehicle_id, area_id, spot_id, section_id, slot_number,
			booking_status, time_stamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + reservationColumns

	created, err := scanReservation(tx.QueryRow(ctx, query,
		reservation.ReservationUID,
		reservation.UserID,
		reservation.VehicleID,
		reservation.AreaID,
		reservation.SpotID,
		reservation.SectionID,
		reservation.SlotNumber,
		reservation.BookingStatus,
		reservation.TimeStamp,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return created, nil
}

func (r *ReservationRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE id = $1
	`

	reservation, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindByUID(ctx context.Context, uid uuid.UUID) (*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE reservation_uid = $1
	`

	reservation, err := scanReservation(r.pool.QueryRow(ctx, query, uid))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY time_stamp DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

// FindExpired 以 time_stamp 為準選出逾期預約，最舊的排前面以控制最壞延遲
func (r *ReservationRepositoryImpl) FindExpired(ctx context.Context, cutoff time.Time) ([]*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE booking_status = 'reserved'
		  AND start_time IS NULL
		  AND time_stamp <= $1
		ORDER BY time_stamp ASC
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*model.Reservation

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE id = $1
		FOR UPDATE
	`

	reservation, err := scanReservation(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

// UpdateStatusWithLock 依目標狀態設定對應的時間欄位，WHERE 限制合法的來源狀態，
// 沒更新到任何列表示狀態已被並發路徑改走，回傳 ErrInvalidTransition
func (r *ReservationRepositoryImpl) UpdateStatusWithLock(
	ctx context.Context,
	tx pgx.Tx,
	id int,
	status model.BookingStatus,
	now time.Time,
) (*model.Reservation, error) {
	var query string

	switch status {
	case model.BookingStatusActive:
		// QR 報到：設定 start_time
		query = `
			UPDATE reservations
			SET booking_status = 'active', start_time = $2, updated_at = $2
			WHERE id = $1 AND booking_status = 'reserved'
			RETURNING` + reservationColumns
	case model.BookingStatusCompleted:
		query = `
			UPDATE reservations
			SET booking_status = 'completed', end_time = $2, updated_at = $2
			WHERE id = $1 AND booking_status IN ('reserved', 'active') AND end_time IS NULL
			RETURNING` + reservationColumns
	case model.BookingStatusInvalid:
		// 寬限期逾時：再守一次 start_time IS NULL，避免跟並發報到互踩
		query = `
			UPDATE reservations
			SET booking_status = 'invalid', waiting_end_time = $2, end_time = $2, updated_at = $2
			WHERE id = $1 AND booking_status = 'reserved' AND start_time IS NULL
			RETURNING` + reservationColumns
	case model.BookingStatusCancelled:
		query = `
			UPDATE reservations
			SET booking_status = 'cancelled', end_time = $2, updated_at = $2
			WHERE id = $1 AND booking_status = 'reserved'
			RETURNING` + reservationColumns
	default:
		return nil, apperrors.ErrInvalidTransition
	}

	reservation, err := scanReservation(tx.QueryRow(ctx, query, id, now.UTC()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindActiveBySpot(ctx context.Context, tx pgx.Tx, spotID int) (*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE spot_id = $1 AND booking_status IN ('reserved', 'active')
		FOR UPDATE
	`

	reservation, err := scanReservation(tx.QueryRow(ctx, query, spotID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepositoryImpl) FindActiveBySectionSlot(ctx context.Context, tx pgx.Tx, sectionID int, slotNumber int) (*model.Reservation, error) {
	query := `SELECT` + reservationColumns + `
		FROM reservations
		WHERE section_id = $1 AND slot_number = $2 AND booking_status IN ('reserved', 'active')
		FOR UPDATE
	`

	reservation, err := scanReservation(tx.QueryRow(ctx, query, sectionID, slotNumber))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, err
	}

	return reservation, nil
}

// UsedSlotNumbers 區段內仍被有效預約占用的虛擬編號
func (r *ReservationRepositoryImpl) UsedSlotNumbers(ctx context.Context, tx pgx.Tx, sectionID int) ([]int, error) {
	query := `
		SELECT slot_number
		FROM reservations
		WHERE section_id = $1 AND slot_number IS NOT NULL AND booking_status IN ('reserved', 'active')
	`

	rows, err := tx.Query(ctx, query, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var used []int

	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		used = append(used, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return used, nil
}

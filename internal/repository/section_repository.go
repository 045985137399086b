package repository

import (
	"context"
	"fmt"
	"time"

	"campus-parking/internal/model"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SectionRepository interface {
	FindByID(ctx context.Context, id int) (*model.ParkingSection, error)
	ListByArea(ctx context.Context, areaID int) ([]*model.ParkingSection, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSection, error)
	AdjustCounters(ctx context.Context, tx pgx.Tx, id int, deltaReserved, deltaParked, deltaUnavailable int) error
	SetStatus(ctx context.Context, tx pgx.Tx, id int, status model.SectionStatus) error
	RecomputeCounters(ctx context.Context, tx pgx.Tx, id int) error
}

type SectionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &SectionRepositoryImpl{
		pool: pool,
	}
}

func (r *SectionRepositoryImpl) FindByID(ctx context.Context, id int) (*model.ParkingSection, error) {
	query := `
		SELECT id, area_id, vehicle_type, total_capacity,
			reserved_count, parked_count, unavailable_count, status,
			created_at, updated_at
		FROM parking_sections
		WHERE id = $1
	`

	var section model.ParkingSection
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.AreaID,
		&section.VehicleType,
		&section.TotalCapacity,
		&section.ReservedCount,
		&section.ParkedCount,
		&section.UnavailableCount,
		&section.Status,
		&section.CreatedAt,
		&section.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, err
	}

	return &section, nil
}

func (r *SectionRepositoryImpl) ListByArea(ctx context.Context, areaID int) ([]*model.ParkingSection, error) {
	query := `
		SELECT id, area_id, vehicle_type, total_capacity,
			reserved_count, parked_count, unavailable_count, status,
			created_at, updated_at
		FROM parking_sections
		WHERE area_id = $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]*model.ParkingSection, 0)

	for rows.Next() {
		var section model.ParkingSection
		err := rows.Scan(
			&section.ID,
			&section.AreaID,
			&section.VehicleType,
			&section.TotalCapacity,
			&section.ReservedCount,
			&section.ParkedCount,
			&section.UnavailableCount,
			&section.Status,
			&section.CreatedAt,
			&section.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sections = append(sections, &section)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}

func (r *SectionRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSection, error) {
	query := `
		SELECT id, area_id, vehicle_type, total_capacity,
			reserved_count, parked_count, unavailable_count, status,
			created_at, updated_at
		FROM parking_sections
		WHERE id = $1
		FOR UPDATE
	`

	var section model.ParkingSection
	err := tx.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.AreaID,
		&section.VehicleType,
		&section.TotalCapacity,
		&section.ReservedCount,
		&section.ParkedCount,
		&section.UnavailableCount,
		&section.Status,
		&section.CreatedAt,
		&section.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, err
	}

	return &section, nil
}

// AdjustCounters 以 GREATEST(..., 0) 夾住計數器，遞減永遠不會讓計數變成負值
func (r *SectionRepositoryImpl) AdjustCounters(ctx context.Context, tx pgx.Tx, id int, deltaReserved, deltaParked, deltaUnavailable int) error {
	query := `
		UPDATE parking_sections
		SET reserved_count = GREATEST(reserved_count + $1, 0),
			parked_count = GREATEST(parked_count + $2, 0),
			unavailable_count = GREATEST(unavailable_count + $3, 0),
			updated_at = $4
		WHERE id = $5
	`

	result, err := tx.Exec(ctx, query, deltaReserved, deltaParked, deltaUnavailable, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust section counters: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

func (r *SectionRepositoryImpl) SetStatus(ctx context.Context, tx pgx.Tx, id int, status model.SectionStatus) error {
	query := `
		UPDATE parking_sections
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := tx.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

// RecomputeCounters 從預約事實表重算 reserved/parked 計數，供漂移修復與測試對帳
func (r *SectionRepositoryImpl) RecomputeCounters(ctx context.Context, tx pgx.Tx, id int) error {
	query := `
		UPDATE parking_sections s
		SET reserved_count = (
				SELECT COUNT(*) FROM reservations
				WHERE section_id = s.id AND booking_status = 'reserved'
			),
			parked_count = (
				SELECT COUNT(*) FROM reservations
				WHERE section_id = s.id AND booking_status = 'active'
			),
			updated_at = $1
		WHERE s.id = $2
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to recompute section counters: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}

	return nil
}

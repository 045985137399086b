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

type SpotRepository interface {
	FindByID(ctx context.Context, id int) (*model.ParkingSpot, error)
	ListBySection(ctx context.Context, sectionID int) ([]*model.ParkingSpot, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSpot, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.SpotStatus) error
}

type SpotRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSpotRepository(pool *pgxpool.Pool) SpotRepository {
	return &SpotRepositoryImpl{
		pool: pool,
	}
}

func (r *SpotRepositoryImpl) FindByID(ctx context.Context, id int) (*model.ParkingSpot, error) {
	query := `
		SELECT id, area_id, section_id, label, status, is_occupied, created_at, updated_at
		FROM parking_spots
		WHERE id = $1
	`

	var spot model.ParkingSpot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&spot.ID,
		&spot.AreaID,
		&spot.SectionID,
		&spot.Label,
		&spot.Status,
		&spot.IsOccupied,
		&spot.CreatedAt,
		&spot.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, err
	}

	return &spot, nil
}

func (r *SpotRepositoryImpl) ListBySection(ctx context.Context, sectionID int) ([]*model.ParkingSpot, error) {
	query := `
		SELECT id, area_id, section_id, label, status, is_occupied, created_at, updated_at
		FROM parking_spots
		WHERE section_id = $1
		ORDER BY label ASC
	`

	rows, err := r.pool.Query(ctx, query, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := make([]*model.ParkingSpot, 0)

	for rows.Next() {
		var spot model.ParkingSpot
		err := rows.Scan(
			&spot.ID,
			&spot.AreaID,
			&spot.SectionID,
			&spot.Label,
			&spot.Status,
			&spot.IsOccupied,
			&spot.CreatedAt,
			&spot.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		spots = append(spots, &spot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *SpotRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.ParkingSpot, error) {
	query := `
		SELECT id, area_id, section_id, label, status, is_occupied, created_at, updated_at
		FROM parking_spots
		WHERE id = $1
		FOR UPDATE
	`

	var spot model.ParkingSpot
	err := tx.QueryRow(ctx, query, id).Scan(
		&spot.ID,
		&spot.AreaID,
		&spot.SectionID,
		&spot.Label,
		&spot.Status,
		&spot.IsOccupied,
		&spot.CreatedAt,
		&spot.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrSpotNotFound
		}
		return nil, err
	}

	return &spot, nil
}

// UpdateStatus 同一條 UPDATE 一併維護 is_occupied，確保冗餘欄位不脫鉤
func (r *SpotRepositoryImpl) UpdateStatus(ctx context.Context, tx pgx.Tx, id int, status model.SpotStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE parking_spots
		SET status = $1, is_occupied = $2, updated_at = $3
		WHERE id = $4
	`

	isOccupied := status == model.SpotStatusOccupied

	result, err := tx.Exec(ctx, query, status, isOccupied, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update spot status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrSpotNotFound
	}

	return nil
}

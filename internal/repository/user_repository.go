package repository

import (
	"context"
	"fmt"

	"campus-parking/internal/model"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*model.User, error)

	// Transaction methods
	// CreateGuest 管理員代客預約時現場建立的訪客帳號
	CreateGuest(ctx context.Context, tx pgx.Tx, name string) (*model.User, error)
	CreateVehicle(ctx context.Context, tx pgx.Tx, userID int, plate, vehicleType string) (*model.Vehicle, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, name, email, role, hour_balance, is_guest, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.HourBalance,
		&user.IsGuest,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepositoryImpl) CreateGuest(ctx context.Context, tx pgx.Tx, name string) (*model.User, error) {
	query := `
		INSERT INTO users (name, role, is_guest)
		VALUES ($1, 'user', TRUE)
		RETURNING id, name, email, role, hour_balance, is_guest, created_at, updated_at
	`

	var user model.User
	err := tx.QueryRow(ctx, query, name).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.HourBalance,
		&user.IsGuest,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) CreateVehicle(ctx context.Context, tx pgx.Tx, userID int, plate, vehicleType string) (*model.Vehicle, error) {
	query := `
		INSERT INTO vehicles (user_id, plate, vehicle_type)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, plate, vehicle_type, created_at
	`

	var vehicle model.Vehicle
	err := tx.QueryRow(ctx, query, userID, plate, vehicleType).Scan(
		&vehicle.ID,
		&vehicle.UserID,
		&vehicle.Plate,
		&vehicle.VehicleType,
		&vehicle.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return &vehicle, nil
}

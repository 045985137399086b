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

type SubscriptionRepository interface {
	ListByUser(ctx context.Context, userID int) ([]*model.Subscription, error)
	ListPenaltiesByUser(ctx context.Context, userID int) ([]*model.Penalty, error)

	// Transaction methods
	// FindActiveForUpdate 鎖住使用者全部 active 訂閱，依 purchase_date 遞增（FIFO）
	FindActiveForUpdate(ctx context.Context, tx pgx.Tx, userID int) ([]*model.Subscription, error)
	Deduct(ctx context.Context, tx pgx.Tx, id int, hours float64) error
	Create(ctx context.Context, tx pgx.Tx, subscription *model.Subscription) (*model.Subscription, error)
	CreatePenalty(ctx context.Context, tx pgx.Tx, userID int, penaltyHours float64) error
	// RecomputeBalance 整筆重算快取餘額，回傳新值
	RecomputeBalance(ctx context.Context, tx pgx.Tx, userID int) (float64, error)
}

type SubscriptionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		pool: pool,
	}
}

func (r *SubscriptionRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]*model.Subscription, error) {
	query := `
		SELECT id, user_id, hours_purchased, hours_remaining, hours_used, status,
			purchase_date, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY purchase_date ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

func (r *SubscriptionRepositoryImpl) ListPenaltiesByUser(ctx context.Context, userID int) ([]*model.Penalty, error) {
	query := `
		SELECT id, user_id, penalty_time, created_at
		FROM penalties
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	penalties := make([]*model.Penalty, 0)

	for rows.Next() {
		var p model.Penalty
		if err := rows.Scan(&p.ID, &p.UserID, &p.PenaltyTime, &p.CreatedAt); err != nil {
			return nil, err
		}
		penalties = append(penalties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return penalties, nil
}

func (r *SubscriptionRepositoryImpl) FindActiveForUpdate(ctx context.Context, tx pgx.Tx, userID int) ([]*model.Subscription, error) {
	query := `
		SELECT id, user_id, hours_purchased, hours_remaining, hours_used, status,
			purchase_date, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND status = 'active' AND hours_remaining > 0
		ORDER BY purchase_date ASC
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubscriptions(rows)
}

// Deduct 扣減時數並同步累計 hours_used；hours_remaining 由 WHERE 保證不會變負，
// 扣到 0 時順手把狀態翻成 exhausted
func (r *SubscriptionRepositoryImpl) Deduct(ctx context.Context, tx pgx.Tx, id int, hours float64) error {
	if hours <= 0 {
		return apperrors.ErrInvalidInput
	}

	query := `
		UPDATE subscriptions
		SET hours_remaining = hours_remaining - $1,
			hours_used = hours_used + $1,
			status = CASE WHEN hours_remaining - $1 <= 0 THEN 'exhausted' ELSE status END,
			updated_at = $2
		WHERE id = $3 AND hours_remaining >= $1
	`

	result, err := tx.Exec(ctx, query, hours, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deduct subscription hours: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvalidInput
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, subscription *model.Subscription) (*model.Subscription, error) {
	query := `
		INSERT INTO subscriptions (
			user_id, hours_purchased, hours_remaining, hours_used, status, purchase_date
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, hours_purchased, hours_remaining, hours_used, status,
			purchase_date, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		subscription.UserID,
		subscription.HoursPurchased,
		subscription.HoursRemaining,
		subscription.HoursUsed,
		subscription.Status,
		subscription.PurchaseDate,
	).Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.HoursPurchased,
		&subscription.HoursRemaining,
		&subscription.HoursUsed,
		&subscription.Status,
		&subscription.PurchaseDate,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return subscription, nil
}

func (r *SubscriptionRepositoryImpl) CreatePenalty(ctx context.Context, tx pgx.Tx, userID int, penaltyHours float64) error {
	query := `
		INSERT INTO penalties (user_id, penalty_time)
		VALUES ($1, $2)
	`

	_, err := tx.Exec(ctx, query, userID, penaltyHours)
	if err != nil {
		return fmt.Errorf("failed to create penalty: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) RecomputeBalance(ctx context.Context, tx pgx.Tx, userID int) (float64, error) {
	query := `
		UPDATE users
		SET hour_balance = (
				SELECT COALESCE(SUM(hours_remaining), 0)
				FROM subscriptions
				WHERE user_id = $1 AND status = 'active'
			),
			updated_at = $2
		WHERE id = $1
		RETURNING hour_balance
	`

	var balance float64
	err := tx.QueryRow(ctx, query, userID, time.Now().UTC()).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to recompute balance: %w", err)
	}

	return balance, nil
}

func collectSubscriptions(rows pgx.Rows) ([]*model.Subscription, error) {
	subscriptions := make([]*model.Subscription, 0)

	for rows.Next() {
		var s model.Subscription
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.HoursPurchased,
			&s.HoursRemaining,
			&s.HoursUsed,
			&s.Status,
			&s.PurchaseDate,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subscriptions, nil
}

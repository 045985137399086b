package service

import (
	"context"
	"time"

	"campus-parking/internal/model"
	"campus-parking/internal/repository"
	apperrors "campus-parking/pkg/app_errors"
	"campus-parking/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Deduction 單一訂閱被扣除的時數
type Deduction struct {
	SubscriptionID int     `json:"subscription_id"`
	Hours          float64 `json:"hours"`
}

// ChargeResult 一次扣款的完整結果，供記錄與遙測
type ChargeResult struct {
	Deductions   []Deduction `json:"deductions"`
	PenaltyHours float64     `json:"penalty_hours"`
	NewBalance   float64     `json:"new_balance"`
}

type BalanceResponse struct {
	UserID        int                   `json:"user_id"`
	HourBalance   float64               `json:"hour_balance"`
	Subscriptions []*model.Subscription `json:"subscriptions"`
	Penalties     []*model.Penalty      `json:"penalties"`
}

type BillingService interface {
	// ChargeUser 在呼叫端的交易內執行 FIFO 扣款，不足的部分記一筆罰款
	ChargeUser(ctx context.Context, tx pgx.Tx, userID int, chargeHours float64) (*ChargeResult, error)
	// TopUp 訂閱加值（PayPal capture 成功後走同一條路徑）
	TopUp(ctx context.Context, userID int, hours float64) (*model.Subscription, float64, error)
	GetBalance(ctx context.Context, userID int) (*BalanceResponse, error)
}

type BillingServiceImpl struct {
	db               DB
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewBillingService(
	db DB,
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) BillingService {
	return &BillingServiceImpl{
		db:               db,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// ChargeUser 依 purchase_date 由舊到新扣款（FIFO），扣不完的餘額整筆記罰款，
// 最後重算快取餘額。帳本存全精度小數時數，顯示端才做四捨五入
func (s *BillingServiceImpl) ChargeUser(ctx context.Context, tx pgx.Tx, userID int, chargeHours float64) (*ChargeResult, error) {
	if chargeHours < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	result := &ChargeResult{Deductions: make([]Deduction, 0)}
	remaining := chargeHours

	if remaining > 0 {
		// FOR UPDATE 鎖整批訂閱：並發扣款（逾期掃描撞上手動結帳）必須序列化
		subscriptions, err := s.subscriptionRepo.FindActiveForUpdate(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		for _, sub := range subscriptions {
			if remaining <= 0 {
				break
			}

			deduct := remaining
			if sub.HoursRemaining < deduct {
				deduct = sub.HoursRemaining
			}
			if deduct <= 0 {
				continue
			}

			if err := s.subscriptionRepo.Deduct(ctx, tx, sub.ID, deduct); err != nil {
				return nil, err
			}

			result.Deductions = append(result.Deductions, Deduction{
				SubscriptionID: sub.ID,
				Hours:          deduct,
			})
			remaining -= deduct
		}

		// 罰款不拆分、不部分減免
		if remaining > 0 {
			if err := s.subscriptionRepo.CreatePenalty(ctx, tx, userID, remaining); err != nil {
				return nil, err
			}
			result.PenaltyHours = remaining
		}
	}

	balance, err := s.subscriptionRepo.RecomputeBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	result.NewBalance = balance

	logger.WithComponent("billing").Info("user charged",
		zap.Int("user_id", userID),
		zap.Float64("charge_hours", chargeHours),
		zap.Float64("penalty_hours", result.PenaltyHours),
		zap.Float64("new_balance", result.NewBalance),
	)

	return result, nil
}

func (s *BillingServiceImpl) TopUp(ctx context.Context, userID int, hours float64) (*model.Subscription, float64, error) {
	if hours <= 0 {
		return nil, 0, apperrors.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	subscription, err := s.subscriptionRepo.Create(ctx, tx, &model.Subscription{
		UserID:         userID,
		HoursPurchased: hours,
		HoursRemaining: hours,
		HoursUsed:      0,
		Status:         model.SubscriptionStatusActive,
		PurchaseDate:   time.Now().UTC(),
	})
	if err != nil {
		return nil, 0, err
	}

	balance, err := s.subscriptionRepo.RecomputeBalance(ctx, tx, userID)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return subscription, balance, nil
}

func (s *BillingServiceImpl) GetBalance(ctx context.Context, userID int) (*BalanceResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	penalties, err := s.subscriptionRepo.ListPenaltiesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &BalanceResponse{
		UserID:        user.ID,
		HourBalance:   user.HourBalance,
		Subscriptions: subscriptions,
		Penalties:     penalties,
	}, nil
}

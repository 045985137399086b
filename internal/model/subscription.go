package model

import "time"

// SubscriptionStatus 訂閱狀態
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExhausted SubscriptionStatus = "exhausted"
)

// Subscription 一次購買的時數包
// 不變量：HoursRemaining >= 0 且 HoursRemaining + HoursUsed = HoursPurchased
type Subscription struct {
	ID             int                `json:"id" db:"id"`
	UserID         int                `json:"user_id" db:"user_id"`
	HoursPurchased float64            `json:"hours_purchased" db:"hours_purchased"`
	HoursRemaining float64            `json:"hours_remaining" db:"hours_remaining"`
	HoursUsed      float64            `json:"hours_used" db:"hours_used"`
	Status         SubscriptionStatus `json:"status" db:"status"`
	PurchaseDate   time.Time          `json:"purchase_date" db:"purchase_date"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

// Penalty 未付費用紀錄，只新增不修改
type Penalty struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	PenaltyTime float64   `json:"penalty_time" db:"penalty_time"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TopUpRequest 加值請求（PayPal capture 成功後呼叫同一路徑）
type TopUpRequest struct {
	Hours float64 `json:"hours" binding:"required,gt=0"`
}

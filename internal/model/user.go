package model

import "time"

const (
	RoleUser      = "user"
	RoleAttendant = "attendant"
	RoleAdmin     = "admin"
)

// User HourBalance 是所有 active 訂閱 hours_remaining 的快取總和，每次扣款後整筆重算
type User struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       *string   `json:"email,omitempty" db:"email"`
	Role        string    `json:"role" db:"role"`
	HourBalance float64   `json:"hour_balance" db:"hour_balance"`
	IsGuest     bool      `json:"is_guest" db:"is_guest"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Vehicle struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Plate       string    `json:"plate" db:"plate"`
	VehicleType string    `json:"vehicle_type" db:"vehicle_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Identity 認證層解析後的請求身分
type Identity struct {
	UserID int
	Role   string
}

// IsPrivileged 管理端角色可操作他人預約與區段管理
func (i Identity) IsPrivileged() bool {
	return i.Role == RoleAttendant || i.Role == RoleAdmin
}

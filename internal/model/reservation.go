package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus 預約狀態類型
type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "reserved"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusInvalid   BookingStatus = "invalid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusReserved, BookingStatusActive, BookingStatusCompleted,
		BookingStatusInvalid, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal 終態：completed / invalid / cancelled
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusInvalid, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusReserved:  {BookingStatusActive, BookingStatusInvalid, BookingStatusCancelled},
		BookingStatusActive:    {BookingStatusCompleted},
		BookingStatusCompleted: {},
		BookingStatusInvalid:   {},
		BookingStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Reservation 一位使用者對單一車位或計數區段名額的預約
// SpotID 與 SectionID 恰好其中一個非 nil；SlotNumber 僅區段預約時有值（虛擬編號）
type Reservation struct {
	ID             int           `json:"id" db:"id"`
	ReservationUID uuid.UUID     `json:"reservation_uid" db:"reservation_uid"`
	UserID         int           `json:"user_id" db:"user_id"`
	VehicleID      int           `json:"vehicle_id" db:"vehicle_id"`
	AreaID         int           `json:"area_id" db:"area_id"`
	SpotID         *int          `json:"spot_id,omitempty" db:"spot_id"`
	SectionID      *int          `json:"section_id,omitempty" db:"section_id"`
	SlotNumber     *int          `json:"slot_number,omitempty" db:"slot_number"`
	BookingStatus  BookingStatus `json:"booking_status" db:"booking_status"`
	TimeStamp      time.Time     `json:"time_stamp" db:"time_stamp"`
	StartTime      *time.Time    `json:"start_time,omitempty" db:"start_time"`
	EndTime        *time.Time    `json:"end_time,omitempty" db:"end_time"`
	WaitingEndTime *time.Time    `json:"waiting_end_time,omitempty" db:"waiting_end_time"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// IsSectionBooking 是否為計數區段預約
func (r *Reservation) IsSectionBooking() bool {
	return r.SectionID != nil
}

// WaitHours 從預約建立到 now 的等待時數（小數）
func (r *Reservation) WaitHours(now time.Time) float64 {
	h := now.Sub(r.TimeStamp).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// ParkedHours 從報到到 now 的停放時數；未報到回傳 0
func (r *Reservation) ParkedHours(now time.Time) float64 {
	if r.StartTime == nil {
		return 0
	}
	h := now.Sub(*r.StartTime).Hours()
	if h < 0 {
		return 0
	}
	return h
}

// ReserveSpotRequest 預約個別車位請求
type ReserveSpotRequest struct {
	VehicleID int `json:"vehicle_id" binding:"required"`
	SpotID    int `json:"spot_id" binding:"required"`
}

// ReserveSectionRequest 預約計數區段請求
type ReserveSectionRequest struct {
	VehicleID int `json:"vehicle_id" binding:"required"`
	SectionID int `json:"section_id" binding:"required"`
}

// GuestAssignRequest 管理員代客預約：現場建立訪客與車輛
type GuestAssignRequest struct {
	GuestName string `json:"guest_name" binding:"required"`
	Plate     string `json:"plate" binding:"required"`
	SpotID    int    `json:"spot_id"`
	SectionID int    `json:"section_id"`
}

// ReservationResponse 預約回應，QRPayload 供 app 產生 QR code
type ReservationResponse struct {
	ID            int    `json:"id"`
	UserID        int    `json:"user_id"`
	AreaID        int    `json:"area_id"`
	SpotID        *int   `json:"spot_id,omitempty"`
	SectionID     *int   `json:"section_id,omitempty"`
	SlotNumber    *int   `json:"slot_number,omitempty"`
	BookingStatus string `json:"booking_status"`
	QRPayload     string `json:"qr_payload"`
	TimeStamp     string `json:"time_stamp"`
}

func NewReservationResponse(r *Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		AreaID:        r.AreaID,
		SpotID:        r.SpotID,
		SectionID:     r.SectionID,
		SlotNumber:    r.SlotNumber,
		BookingStatus: string(r.BookingStatus),
		QRPayload:     r.ReservationUID.String(),
		TimeStamp:     r.TimeStamp.UTC().Format(time.RFC3339),
	}
}

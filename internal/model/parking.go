package model

import "time"

// SpotStatus 個別車位狀態
type SpotStatus string

const (
	SpotStatusAvailable   SpotStatus = "available"
	SpotStatusReserved    SpotStatus = "reserved"
	SpotStatusOccupied    SpotStatus = "occupied"
	SpotStatusUnavailable SpotStatus = "unavailable"
)

func (s SpotStatus) IsValid() bool {
	switch s {
	case SpotStatusAvailable, SpotStatusReserved, SpotStatusOccupied, SpotStatusUnavailable:
		return true
	}
	return false
}

// ParkingSpot 個別車位（汽車格）
// IsOccupied 是舊查詢路徑用的冗餘欄位，必須與 Status 一起在同一交易內更新
type ParkingSpot struct {
	ID         int        `json:"id" db:"id"`
	AreaID     int        `json:"area_id" db:"area_id"`
	SectionID  int        `json:"section_id" db:"section_id"`
	Label      string     `json:"label" db:"label"`
	Status     SpotStatus `json:"status" db:"status"`
	IsOccupied bool       `json:"is_occupied" db:"is_occupied"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// SectionStatus 區段狀態
type SectionStatus string

const (
	SectionStatusAvailable   SectionStatus = "available"
	SectionStatusUnavailable SectionStatus = "unavailable"
)

// ParkingSection 計數型區段（機車、腳踏車架）
// 區段內的「車位編號」是虛擬的：由 1..TotalCapacity 對照有效預約推導，不是獨立資料列
type ParkingSection struct {
	ID               int           `json:"id" db:"id"`
	AreaID           int           `json:"area_id" db:"area_id"`
	VehicleType      string        `json:"vehicle_type" db:"vehicle_type"`
	TotalCapacity    int           `json:"total_capacity" db:"total_capacity"`
	ReservedCount    int           `json:"reserved_count" db:"reserved_count"`
	ParkedCount      int           `json:"parked_count" db:"parked_count"`
	UnavailableCount int           `json:"unavailable_count" db:"unavailable_count"`
	Status           SectionStatus `json:"status" db:"status"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// RemainingCapacity 尚可預約的名額
func (s *ParkingSection) RemainingCapacity() int {
	remaining := s.TotalCapacity - s.ReservedCount - s.ParkedCount - s.UnavailableCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasCapacity 是否還有名額可預約
func (s *ParkingSection) HasCapacity() bool {
	return s.Status == SectionStatusAvailable && s.RemainingCapacity() > 0
}

// SectionAvailabilityResponse 區段可用名額回應
type SectionAvailabilityResponse struct {
	SectionID        int    `json:"section_id"`
	AreaID           int    `json:"area_id"`
	VehicleType      string `json:"vehicle_type"`
	TotalCapacity    int    `json:"total_capacity"`
	Remaining        int    `json:"remaining"`
	ReservedCount    int    `json:"reserved_count"`
	ParkedCount      int    `json:"parked_count"`
	UnavailableCount int    `json:"unavailable_count"`
	Status           string `json:"status"`
}

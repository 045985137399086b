package realtime

// EventType 即時事件類型
type EventType string

const (
	EventReservationUpdated EventType = "reservation:updated"
	EventSpotsUpdated       EventType = "spots:updated"
	EventCapacityUpdated    EventType = "capacity:updated"
)

// 事件來源，訂閱端可依來源決定要不要重撈
const (
	SourceSweeper   = "sweeper"
	SourceUser      = "user"
	SourceAttendant = "attendant"
)

// Event 帶足以讓訂閱端判斷是否重撈的識別欄位
// 事件是冪等提示而非交易日誌：允許重複投遞，不保證跨房間順序
type Event struct {
	Type          EventType `json:"type"`
	AreaID        int       `json:"area_id,omitempty"`
	ReservationID int       `json:"reservation_id,omitempty"`
	SpotID        int       `json:"spot_id,omitempty"`
	SectionID     int       `json:"section_id,omitempty"`
	SlotNumber    int       `json:"slot_number,omitempty"`
	Status        string    `json:"status"`
	Source        string    `json:"source"`
}

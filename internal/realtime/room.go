package realtime

import "fmt"

// RoomKind 房間類型：以型別化的建構子取代字串拼接，避免 subscribe/publish key 打錯字對不上
type RoomKind string

const (
	RoomKindUser        RoomKind = "user"
	RoomKindArea        RoomKind = "area"
	RoomKindReservation RoomKind = "reservation"
)

// Room 一個具名的訂閱群組
type Room struct {
	Kind RoomKind `json:"kind"`
	ID   int      `json:"id"`
}

func UserRoom(userID int) Room {
	return Room{Kind: RoomKindUser, ID: userID}
}

func AreaRoom(areaID int) Room {
	return Room{Kind: RoomKindArea, ID: areaID}
}

func ReservationRoom(reservationID int) Room {
	return Room{Kind: RoomKindReservation, ID: reservationID}
}

func (r Room) Key() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

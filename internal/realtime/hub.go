package realtime

import (
	"context"
	"sync"

	"campus-parking/internal/model"
	"campus-parking/pkg/logger"

	"go.uber.org/zap"
)

// subscriberBuffer 訂閱者 channel 緩衝；塞滿時丟棄事件而不是卡住 publisher
const subscriberBuffer = 16

// Publisher 交易 commit 之後的事件出口，services 與 sweeper 只依賴這個介面
type Publisher interface {
	Publish(room Room, event Event)
}

// ReservationAuthorizer 加入 reservation 房間前的授權檢查：
// 本人或管理端角色才放行
type ReservationAuthorizer func(ctx context.Context, identity model.Identity, reservationID int) bool

// Subscription 一條 socket 對應的訂閱，由 gateway 持有
type Subscription struct {
	hub   *Hub
	ch    chan Event
	rooms map[string]struct{}
}

func (s *Subscription) Events() <-chan Event {
	return s.ch
}

func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub 行程內的房間廣播；多行程部署時由 Broker 橋接
type Hub struct {
	mu        sync.RWMutex
	rooms     map[string]map[*Subscription]struct{}
	authorize ReservationAuthorizer
}

func NewHub(authorize ReservationAuthorizer) *Hub {
	return &Hub{
		rooms:     make(map[string]map[*Subscription]struct{}),
		authorize: authorize,
	}
}

// Subscribe 建立訂閱：一定加入自己的 user 房間（綁認證身分，不由 client 指定），
// area 房間自由加入，reservation 房間過授權，不過就靜默略過（不回錯誤，避免洩漏存在性）
func (h *Hub) Subscribe(ctx context.Context, identity model.Identity, rooms ...Room) *Subscription {
	sub := &Subscription{
		hub:   h,
		ch:    make(chan Event, subscriberBuffer),
		rooms: make(map[string]struct{}),
	}

	joined := []Room{UserRoom(identity.UserID)}
	for _, room := range rooms {
		switch room.Kind {
		case RoomKindUser:
			// user 房間只能是自己的，忽略 client 指定的
			continue
		case RoomKindReservation:
			if h.authorize == nil || !h.authorize(ctx, identity, room.ID) {
				continue
			}
			joined = append(joined, room)
		case RoomKindArea:
			joined = append(joined, room)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range joined {
		key := room.Key()
		sub.rooms[key] = struct{}{}
		if h.rooms[key] == nil {
			h.rooms[key] = make(map[*Subscription]struct{})
		}
		h.rooms[key][sub] = struct{}{}
	}

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key := range sub.rooms {
		if members, ok := h.rooms[key]; ok {
			delete(members, sub)
			if len(members) == 0 {
				delete(h.rooms, key)
			}
		}
	}
	sub.rooms = nil
	close(sub.ch)
}

// Publish fire-and-forget：絕不阻塞呼叫端的交易路徑，慢訂閱者直接丟事件
func (h *Hub) Publish(room Room, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.rooms[room.Key()] {
		select {
		case sub.ch <- event:
		default:
			logger.WithComponent("hub").Warn("subscriber buffer full, dropping event",
				zap.String("room", room.Key()), zap.String("type", string(event.Type)))
		}
	}
}

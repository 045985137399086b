package realtime

import (
	"context"
	"testing"

	"campus-parking/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvOrNil(ch <-chan Event) *Event {
	select {
	case event, ok := <-ch:
		if !ok {
			return nil
		}
		return &event
	default:
		return nil
	}
}

func TestRoom_Key(t *testing.T) {
	assert.Equal(t, "user:7", UserRoom(7).Key())
	assert.Equal(t, "area:1", AreaRoom(1).Key())
	assert.Equal(t, "reservation:100", ReservationRoom(100).Key())
}

func TestHub_Subscribe(t *testing.T) {
	ctx := context.Background()
	identity := model.Identity{UserID: 7, Role: model.RoleUser}

	t.Run("一定加入自己的 user 房間", func(t *testing.T) {
		hub := NewHub(nil)
		sub := hub.Subscribe(ctx, identity)
		defer sub.Close()

		hub.Publish(UserRoom(7), Event{Type: EventReservationUpdated, ReservationID: 1})

		got := recvOrNil(sub.Events())
		require.NotNil(t, got)
		assert.Equal(t, 1, got.ReservationID)
	})

	t.Run("client 指定的 user 房間被忽略", func(t *testing.T) {
		hub := NewHub(nil)
		sub := hub.Subscribe(ctx, identity, UserRoom(999))
		defer sub.Close()

		hub.Publish(UserRoom(999), Event{Type: EventReservationUpdated})

		assert.Nil(t, recvOrNil(sub.Events()))
	})

	t.Run("area 房間自由加入", func(t *testing.T) {
		hub := NewHub(nil)
		sub := hub.Subscribe(ctx, identity, AreaRoom(1))
		defer sub.Close()

		hub.Publish(AreaRoom(1), Event{Type: EventSpotsUpdated, AreaID: 1, SpotID: 3})

		got := recvOrNil(sub.Events())
		require.NotNil(t, got)
		assert.Equal(t, 3, got.SpotID)
	})

	t.Run("未授權的 reservation 房間靜默略過", func(t *testing.T) {
		denyAll := func(ctx context.Context, identity model.Identity, reservationID int) bool {
			return false
		}
		hub := NewHub(denyAll)
		sub := hub.Subscribe(ctx, identity, ReservationRoom(100))
		defer sub.Close()

		hub.Publish(ReservationRoom(100), Event{Type: EventReservationUpdated, ReservationID: 100})

		assert.Nil(t, recvOrNil(sub.Events()))
	})

	t.Run("授權通過的 reservation 房間收得到事件", func(t *testing.T) {
		ownOnly := func(ctx context.Context, identity model.Identity, reservationID int) bool {
			return reservationID == 100
		}
		hub := NewHub(ownOnly)
		sub := hub.Subscribe(ctx, identity, ReservationRoom(100), ReservationRoom(200))
		defer sub.Close()

		hub.Publish(ReservationRoom(100), Event{Type: EventReservationUpdated, ReservationID: 100})
		hub.Publish(ReservationRoom(200), Event{Type: EventReservationUpdated, ReservationID: 200})

		got := recvOrNil(sub.Events())
		require.NotNil(t, got)
		assert.Equal(t, 100, got.ReservationID)
		assert.Nil(t, recvOrNil(sub.Events()))
	})
}

func TestHub_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("沒有訂閱者的房間發布是 no-op", func(t *testing.T) {
		hub := NewHub(nil)
		assert.NotPanics(t, func() {
			hub.Publish(AreaRoom(1), Event{Type: EventSpotsUpdated})
		})
	})

	t.Run("緩衝滿時丟事件而不是阻塞", func(t *testing.T) {
		hub := NewHub(nil)
		sub := hub.Subscribe(ctx, model.Identity{UserID: 7})
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < subscriberBuffer+10; i++ {
				hub.Publish(UserRoom(7), Event{Type: EventReservationUpdated, ReservationID: i})
			}
		}()
		<-done

		// 只收得到緩衝內的前段，其餘被丟棄
		received := 0
		for recvOrNil(sub.Events()) != nil {
			received++
		}
		assert.Equal(t, subscriberBuffer, received)
	})

	t.Run("同房間多訂閱者都收到事件", func(t *testing.T) {
		hub := NewHub(nil)
		first := hub.Subscribe(ctx, model.Identity{UserID: 7}, AreaRoom(1))
		second := hub.Subscribe(ctx, model.Identity{UserID: 8}, AreaRoom(1))
		defer first.Close()
		defer second.Close()

		hub.Publish(AreaRoom(1), Event{Type: EventCapacityUpdated, SectionID: 5})

		require.NotNil(t, recvOrNil(first.Events()))
		require.NotNil(t, recvOrNil(second.Events()))
	})
}

func TestSubscription_Close(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(nil)

	sub := hub.Subscribe(ctx, model.Identity{UserID: 7}, AreaRoom(1))
	sub.Close()

	// 關閉後發布不會 panic，channel 已關閉
	assert.NotPanics(t, func() {
		hub.Publish(AreaRoom(1), Event{Type: EventSpotsUpdated})
	})
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

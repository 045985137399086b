package handler

import (
	"io"
	"strconv"
	"time"

	"campus-parking/internal/middleware"
	"campus-parking/internal/realtime"

	"github.com/gin-gonic/gin"
)

// keepAliveInterval SSE ping 週期，讓中間層不會因閒置砍連線
const keepAliveInterval = 25 * time.Second

// EventsHandler 即時閘道的 SSE 端點：把 Hub 房間的事件轉成 server-sent events。
// user 房間永遠綁認證身分；area、reservation 房間由 query 參數選擇性加入
type EventsHandler struct {
	hub *realtime.Hub
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

func (h *EventsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/events/stream", h.Stream)
}

func (h *EventsHandler) Stream(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var rooms []realtime.Room
	if v := c.Query("area_id"); v != "" {
		if areaID, err := strconv.Atoi(v); err == nil {
			rooms = append(rooms, realtime.AreaRoom(areaID))
		}
	}
	if v := c.Query("reservation_id"); v != "" {
		if reservationID, err := strconv.Atoi(v); err == nil {
			rooms = append(rooms, realtime.ReservationRoom(reservationID))
		}
	}

	sub := h.hub.Subscribe(c.Request.Context(), identity, rooms...)
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ping := time.NewTicker(keepAliveInterval)
	defer ping.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-ping.C:
			c.SSEvent("ping", nil)
			return true
		}
	})
}

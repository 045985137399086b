package realtime

import (
	"context"
	"encoding/json"
	"time"

	"campus-parking/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const eventChannel = "parking:events"

// envelope 跨行程事件信封；Origin 用來略過自己發出的訊息（本地已投遞過）
type envelope struct {
	Origin string `json:"origin"`
	Room   Room   `json:"room"`
	Event  Event  `json:"event"`
}

// Broker 以 redis Pub/Sub 橋接多個後端行程的 Hub。
// redis 不可用時退化成單行程投遞，不是硬性失敗。
type Broker struct {
	hub      *Hub
	client   *redis.Client
	originID string
}

func NewBroker(hub *Hub, client *redis.Client) *Broker {
	return &Broker{
		hub:      hub,
		client:   client,
		originID: uuid.New().String(),
	}
}

// Publish 先投遞本地訂閱者，再 fan-out 給其他行程
func (b *Broker) Publish(room Room, event Event) {
	b.hub.Publish(room, event)

	payload, err := json.Marshal(envelope{
		Origin: b.originID,
		Room:   room,
		Event:  event,
	})
	if err != nil {
		logger.WithComponent("broker").Error("marshal envelope failed", zap.Error(err))
		return
	}

	// fire-and-forget：publish 失敗只記 log，本地投遞已完成
	if err := b.client.Publish(context.Background(), eventChannel, payload).Err(); err != nil {
		logger.WithComponent("broker").Warn("redis publish failed, local delivery only", zap.Error(err))
	}
}

// Start 訂閱事件頻道並把其他行程的事件轉進本地 Hub
func (b *Broker) Start(ctx context.Context) {
	go b.runRelay(ctx)
}

func (b *Broker) runRelay(ctx context.Context) {
	log := logger.WithComponent("broker")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pubsub := b.client.Subscribe(ctx, eventChannel)
		ch := pubsub.Channel()

	relay:
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break relay
				}
				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Warn("invalid event envelope", zap.Error(err))
					continue
				}
				if env.Origin == b.originID {
					continue
				}
				b.hub.Publish(env.Room, env.Event)
			}
		}

		pubsub.Close()
		log.Warn("event channel closed, resubscribing")
		time.Sleep(time.Second)
	}
}

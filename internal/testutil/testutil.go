package testutil

import (
	"context"
	"sync"

	"campus-parking/internal/realtime"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeTx 假交易：記錄 Commit/Rollback 供單元測試驗證交易邊界
type FakeTx struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool
	CommitErr  error
}

func (t *FakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *FakeTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

func (t *FakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *FakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *FakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *FakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *FakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *FakeTx) Conn() *pgx.Conn                                               { return nil }

// FakeDB 假連線池：每次 BeginTx 發一個新的 FakeTx 並留存供事後驗證
type FakeDB struct {
	mu       sync.Mutex
	Txs      []*FakeTx
	BeginErr error
}

func (d *FakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.BeginErr != nil {
		return nil, d.BeginErr
	}
	tx := &FakeTx{}
	d.Txs = append(d.Txs, tx)
	return tx, nil
}

// LastTx 最後一次開出的交易；沒有就回 nil
func (d *FakeDB) LastTx() *FakeTx {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Txs) == 0 {
		return nil
	}
	return d.Txs[len(d.Txs)-1]
}

// PublishedEvent 一筆被廣播的事件與目的房間
type PublishedEvent struct {
	Room  realtime.Room
	Event realtime.Event
}

// RecordingPublisher 把 Publish 進來的事件全記下來的假 Publisher
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

func (p *RecordingPublisher) Publish(room realtime.Room, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, PublishedEvent{Room: room, Event: event})
}

// EventsForRoom 已廣播到指定房間的事件
func (p *RecordingPublisher) EventsForRoom(room realtime.Room) []realtime.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var events []realtime.Event
	for _, e := range p.Events {
		if e.Room == room {
			events = append(events, e.Event)
		}
	}
	return events
}

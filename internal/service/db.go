package service

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DB services 對連線池的最小依賴；*pgxpool.Pool 直接滿足，測試注入假交易
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

package repository

import (
	"context"

	"ordersvc/internal/domain/model"
)

// 注文の永続化（ordersテーブル1つ）だけを約束。
// 失敗はmodel.ErrStoreUnavailableでwrapして返す。
type OrderRepository interface {
	//ordersが無ければ作る（何度呼んでもよい）
	EnsureSchema(ctx context.Context) error
	//idとcreated_atはDBが決める
	Insert(ctx context.Context, customerEmail string, item string) (model.Order, error)
	//見つからない場合は (zero, false, nil)
	FindByID(ctx context.Context, orderID int64) (model.Order, bool, error)
	Pinger
}

// health check用
type Pinger interface {
	Ping(ctx context.Context) error
}

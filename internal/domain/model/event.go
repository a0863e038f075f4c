package model

import (
	"encoding/json"
	"strconv"
	"time"
)

const EventOrderCreated = "order_created"

// 注文作成イベント（DBには保存しない）
type OrderCreatedEvent struct {
	Event         string    `json:"event"`
	OrderID       int64     `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Item          string    `json:"item"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOrderCreatedEvent は保存済みの注文からイベントを組み立てる。
func NewOrderCreatedEvent(o Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		Event:         EventOrderCreated,
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		Item:          o.Item,
		CreatedAt:     o.CreatedAt.UTC(),
	}
}

// パーティションキーは注文IDの10進文字列
func (e OrderCreatedEvent) Key() string {
	return strconv.FormatInt(e.OrderID, 10)
}

func (e OrderCreatedEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

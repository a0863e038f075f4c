package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ordersvc/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// OrderCache は注文を読み取り用にRedisへ置く。
// 注文は作成後に変わらないので、TTLが切れるまで古くならない。
type OrderCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

func NewOrderCache(addr, serviceName string, ttl time.Duration) *OrderCache {
	return &OrderCache{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
		ttl:         ttl,
	}
}

func (c *OrderCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", c.serviceName, operation, key)
}

func (c *OrderCache) orderKey(id int64) string {
	return c.GenerateKey("order", strconv.FormatInt(id, 10))
}

// GetOrder はキャッシュに無ければ found=false
func (c *OrderCache) GetOrder(ctx context.Context, id int64) (model.Order, bool, error) {
	raw, err := c.client.Get(ctx, c.orderKey(id)).Bytes()
	if err == redis.Nil {
		return model.Order{}, false, nil
	}
	if err != nil {
		return model.Order{}, false, err
	}

	var o model.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return model.Order{}, false, fmt.Errorf("decode cached order %d: %w", id, err)
	}
	return o, true, nil
}

func (c *OrderCache) SetOrder(ctx context.Context, o model.Order) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.orderKey(o.ID), raw, c.ttl).Err()
}

func (c *OrderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *OrderCache) Close() error {
	return c.client.Close()
}

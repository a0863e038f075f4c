package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ordersvc/internal/domain/model"
	"ordersvc/internal/metrics"
	repo "ordersvc/internal/repository"
)

// brokerへ1件送ってackを待つ
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

// 読み取り用キャッシュ（任意）
type OrderCache interface {
	GetOrder(ctx context.Context, id int64) (model.Order, bool, error)
	SetOrder(ctx context.Context, o model.Order) error
}

type OrderValidator interface {
	ValidateCreate(in CreateOrderInput) error
}

type OrderUsecase struct {
	orders    repo.OrderRepository
	publisher EventPublisher
	validator OrderValidator
	cache     OrderCache
	topic     string
	log       *slog.Logger
	metrics   *metrics.Metrics
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	publisher EventPublisher,
	validator OrderValidator,
	topic string,
	log *slog.Logger,
	m *metrics.Metrics,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		publisher: publisher,
		validator: validator,
		topic:     topic,
		log:       log,
		metrics:   m,
	}
}

// WithCache はGetOrderの前にcacheを見るようにする
func (u *OrderUsecase) WithCache(c OrderCache) *OrderUsecase {
	u.cache = c
	return u
}

type CreateOrderInput struct {
	CustomerEmail string
	Item          string
}

type OrderOutput struct {
	ID            int64     `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Item          string    `json:"item"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateOrder は 検証 → 保存(commit) → イベント送信 の順に行う。
// 送信に失敗しても保存済みの注文は戻さない（補償処理は無い）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if err := u.validator.ValidateCreate(in); err != nil {
		return OrderOutput{}, wrapHTTPError(http.StatusUnprocessableEntity, err.Error(), err)
	}

	o, err := u.orders.Insert(ctx, in.CustomerEmail, in.Item)
	if err != nil {
		u.log.ErrorContext(ctx, "insert order failed", slog.Any("error", err))
		return OrderOutput{}, wrapHTTPError(http.StatusServiceUnavailable, "store unavailable", err)
	}
	u.metrics.OrderCreated()

	ev := model.NewOrderCreatedEvent(o)
	payload, err := ev.Encode()
	if err != nil {
		return OrderOutput{}, wrapHTTPError(http.StatusInternalServerError, "encode event failed", err)
	}

	if err := u.publisher.Publish(ctx, u.topic, ev.Key(), payload); err != nil {
		u.metrics.PublishFailed()
		//ここで失敗すると注文はあるのにイベントが無い状態になる
		attrs := []any{
			slog.Int64("order_id", o.ID),
			slog.String("topic", u.topic),
			slog.Any("error", err),
		}
		if errors.Is(err, model.ErrPublisherNotReady) {
			u.log.ErrorContext(ctx, "publisher not started before serving requests", attrs...)
			return OrderOutput{}, wrapHTTPError(http.StatusInternalServerError, "event publisher not ready", err)
		}
		u.log.ErrorContext(ctx, "order committed but order_created event was not published", attrs...)
		return OrderOutput{}, wrapHTTPError(http.StatusInternalServerError, "event publish failed", err)
	}

	u.log.InfoContext(ctx, "order created", slog.Int64("order_id", o.ID))
	return toOrderOutput(o), nil
}

// GetOrder は見つからなければ404
func (u *OrderUsecase) GetOrder(ctx context.Context, id int64) (OrderOutput, error) {
	if id <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	if u.cache != nil {
		o, found, err := u.cache.GetOrder(ctx, id)
		if err != nil {
			u.log.WarnContext(ctx, "order cache get failed", slog.Int64("order_id", id), slog.Any("error", err))
		}
		if found {
			return toOrderOutput(o), nil
		}
	}

	o, found, err := u.orders.FindByID(ctx, id)
	if err != nil {
		u.log.ErrorContext(ctx, "find order failed", slog.Int64("order_id", id), slog.Any("error", err))
		return OrderOutput{}, wrapHTTPError(http.StatusServiceUnavailable, "store unavailable", err)
	}
	if !found {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	if u.cache != nil {
		if err := u.cache.SetOrder(ctx, o); err != nil {
			u.log.WarnContext(ctx, "order cache set failed", slog.Int64("order_id", id), slog.Any("error", err))
		}
	}
	return toOrderOutput(o), nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		Item:          o.Item,
		CreatedAt:     o.CreatedAt,
	}
}

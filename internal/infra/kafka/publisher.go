package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ordersvc/internal/domain/model"

	"github.com/segmentio/kafka-go"
)

// 送信に使う部分だけ（テストで差し替える）
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher はbrokerへの長寿命な接続を持つ。
// Start〜Stopの間だけPublishできる。複数goroutineから同時に呼んでよい。
type Publisher struct {
	brokers []string
	linger  time.Duration
	log     *slog.Logger

	dial      func(ctx context.Context, brokers []string) error
	newWriter func() messageWriter

	mu     sync.RWMutex
	writer messageWriter
}

func NewPublisher(brokers []string, linger time.Duration, log *slog.Logger) *Publisher {
	p := &Publisher{
		brokers: brokers,
		linger:  linger,
		log:     log,
		dial:    dialAny,
	}
	p.newWriter = p.defaultWriter
	return p
}

func (p *Publisher) defaultWriter() messageWriter {
	return &kafka.Writer{
		Addr:     kafka.TCP(p.brokers...),
		Balancer: &kafka.Hash{},
		//全ISRのackを待つ
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           p.linger,
		AllowAutoTopicCreation: true,
	}
}

// bootstrapのどれか1台とメタデータをやり取りできればOK
func dialAny(ctx context.Context, brokers []string) error {
	var errs []error
	for _, addr := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = conn.Brokers()
		_ = conn.Close()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}

// Start はbrokerへの疎通を確認してwriterを作る。起動済みなら何もしない
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer != nil {
		return nil
	}
	if len(p.brokers) == 0 {
		return errors.New("kafka: no bootstrap servers")
	}
	if err := p.dial(ctx, p.brokers); err != nil {
		return fmt.Errorf("kafka: connect %v: %w", p.brokers, err)
	}

	p.writer = p.newWriter()
	p.log.Info("kafka publisher started", slog.Any("brokers", p.brokers))
	return nil
}

// Stop は送信中のメッセージを待ってからwriterを閉じる。停止済みなら何もしない。
// ctxが先に切れたら待つのをやめてエラーを返す（closeは裏で続く）
func (p *Publisher) Stop(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- p.closeWriter()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("kafka: stop: %w", ctx.Err())
	}
}

func (p *Publisher) closeWriter() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	if err != nil {
		return fmt.Errorf("kafka: close writer: %w", err)
	}
	p.log.Info("kafka publisher stopped")
	return nil
}

// Publish は1件送ってbrokerのackを待つ。リトライはしない。
// タイムアウトは呼び出し側のctxとクライアントの既定値に任せる。
func (p *Publisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	//Stopが送信中のwriterを閉じないようにRLockを持ったまま送る
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.writer == nil {
		return model.ErrPublisherNotReady
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: topic=%s key=%s: %v", model.ErrPublishFailed, topic, key, err)
	}
	return nil
}

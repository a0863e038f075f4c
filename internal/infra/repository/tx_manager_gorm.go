package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ordersvc/internal/domain/model"

	"gorm.io/gorm"
)

// TxManagerGorm は1回の操作ごとにスコープ付きのセッションを払い出す。
type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// WithinTx は fn をトランザクション内で実行する。
// 成功でcommit、失敗(panic含む)でrollback。どちらでも接続はpoolに戻る。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := tm.db.WithContext(ctx).Transaction(fn)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// WithinReadSession は読み取り専用のセッションで fn を実行する。
func (tm *TxManagerGorm) WithinReadSession(ctx context.Context, fn func(s *gorm.DB) error) error {
	err := tm.db.WithContext(ctx).Transaction(fn, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

// DBのエラーはすべてStoreUnavailableとして返す（原因は残す）
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}

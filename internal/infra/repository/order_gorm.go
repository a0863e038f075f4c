package repository

import (
	"context"
	"errors"

	"ordersvc/internal/domain/model"
	repo "ordersvc/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	tx *TxManagerGorm
}

var _ repo.OrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{tx: NewTxManagerGorm(db)}
}

// EnsureSchema はordersが無いときだけCREATE TABLEする（ALTERはしない）
func (r *OrderGormRepository) EnsureSchema(ctx context.Context) error {
	return r.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		m := tx.Migrator()
		if m.HasTable(&model.Order{}) {
			return nil
		}
		return m.CreateTable(&model.Order{})
	})
}

func (r *OrderGormRepository) Insert(ctx context.Context, customerEmail string, item string) (model.Order, error) {
	o := model.Order{CustomerEmail: customerEmail, Item: item}

	//id と created_at は RETURNING で埋まる
	err := r.tx.WithinTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&o).Error
	})
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, bool, error) {
	var o model.Order
	found := false

	err := r.tx.WithinReadSession(ctx, func(s *gorm.DB) error {
		err := s.Where("id = ?", orderID).First(&o).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return model.Order{}, false, err
	}
	if !found {
		return model.Order{}, false, nil
	}
	return o, true, nil
}

// Ping は SELECT 1 を投げて疎通を確認する
func (r *OrderGormRepository) Ping(ctx context.Context) error {
	return r.tx.WithinReadSession(ctx, func(s *gorm.DB) error {
		var one int
		if err := s.Raw("SELECT 1").Scan(&one).Error; err != nil {
			return err
		}
		if one != 1 {
			return errors.New("unexpected SELECT 1 result")
		}
		return nil
	})
}

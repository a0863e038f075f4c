package model

import "time"

// ordersテーブルの1行。idとcreated_atはDB側で採番・設定する。
type Order struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerEmail string    `gorm:"type:varchar(255);not null" json:"customer_email"`
	Item          string    `gorm:"type:varchar(255);not null" json:"item"`
	CreatedAt     time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime:false" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

package model

import "time"

// CashCollection is a fee collected from a stall holder.
type CashCollection struct {
	ID       string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID string  `gorm:"column:worker_id;index:idx_cash_worker_date" json:"workerId"`
	MarketID *string `gorm:"column:market_id;index" json:"marketId"`
	Date     string  `gorm:"column:date;type:date;index:idx_cash_worker_date" json:"date"`
	StallID  string  `gorm:"column:stall_id" json:"stallId"`
	Amount   float64 `gorm:"column:amount;type:decimal(10,2)" json:"amount"`
	Receipt  string  `gorm:"column:receipt" json:"receipt"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (CashCollection) TableName() string {
	return "mandi_cash_collections"
}

package model

import "time"

// StallConfirmation records that a stall holder was present and trading.
type StallConfirmation struct {
	ID        string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID  string  `gorm:"column:worker_id;index:idx_confirm_worker_date" json:"workerId"`
	MarketID  *string `gorm:"column:market_id;index" json:"marketId"`
	Date      string  `gorm:"column:date;type:date;index:idx_confirm_worker_date" json:"date"`
	StallID   string  `gorm:"column:stall_id" json:"stallId"`
	Confirmed bool    `gorm:"column:confirmed;not null" json:"confirmed"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (StallConfirmation) TableName() string {
	return "mandi_stall_confirmations"
}

// StallInspection is the inspection form; its photos go to mandi_media_uploads.
type StallInspection struct {
	ID       string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID string  `gorm:"column:worker_id;index:idx_inspect_worker_date" json:"workerId"`
	MarketID *string `gorm:"column:market_id" json:"marketId"`
	Date     string  `gorm:"column:date;type:date;index:idx_inspect_worker_date" json:"date"`
	StallID  string  `gorm:"column:stall_id" json:"stallId"`
	Rating   int     `gorm:"column:rating" json:"rating"`
	Notes    string  `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (StallInspection) TableName() string {
	return "mandi_stall_inspections"
}

package model

import "time"

// TodaysOffer is one commodity price offered at the market today.
type TodaysOffer struct {
	ID        string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID  string  `gorm:"column:worker_id;index:idx_offer_worker_date" json:"workerId"`
	MarketID  *string `gorm:"column:market_id;index" json:"marketId"`
	Date      string  `gorm:"column:date;type:date;index:idx_offer_worker_date" json:"date"`
	Commodity string  `gorm:"column:commodity" json:"commodity"`
	Price     float64 `gorm:"column:price;type:decimal(10,2)" json:"price"`
	Unit      string  `gorm:"column:unit;type:varchar(16)" json:"unit"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (TodaysOffer) TableName() string {
	return "mandi_todays_offers"
}

// NonAvailableCommodity flags a commodity missing from the market today.
type NonAvailableCommodity struct {
	ID        string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID  string  `gorm:"column:worker_id;index:idx_nonavail_worker_date" json:"workerId"`
	MarketID  *string `gorm:"column:market_id" json:"marketId"`
	Date      string  `gorm:"column:date;type:date;index:idx_nonavail_worker_date" json:"date"`
	Commodity string  `gorm:"column:commodity" json:"commodity"`
	Reason    string  `gorm:"column:reason" json:"reason"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (NonAvailableCommodity) TableName() string {
	return "mandi_non_available_commodities"
}

package model

import "time"

type Market struct {
	ID       string `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name" json:"name"`
	District string `gorm:"column:district" json:"district"`
	Active   bool   `gorm:"column:active;not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Market) TableName() string {
	return "mandi_markets"
}

// MarketSchedule maps a market to the weekdays it runs. Weekday follows
// time.Weekday numbering (Sunday = 0).
type MarketSchedule struct {
	ID       int32  `gorm:"primaryKey;column:id" json:"id"`
	MarketID string `gorm:"column:market_id;index:idx_schedule_market_weekday" json:"marketId"`
	Weekday  int    `gorm:"column:weekday;index:idx_schedule_market_weekday" json:"weekday"`
}

func (MarketSchedule) TableName() string {
	return "mandi_market_schedules"
}

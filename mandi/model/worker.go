package model

import "time"

// Worker is a field worker. MarketID is null for roaming roles (BDOs cover
// whichever markets need them on the day).
type Worker struct {
	ID       string  `gorm:"primaryKey;column:id" json:"id"`
	Name     string  `gorm:"column:name" json:"name"`
	Role     string  `gorm:"column:role;type:varchar(32)" json:"role"`
	MarketID *string `gorm:"column:market_id;index" json:"marketId"`
	Phone    string  `gorm:"column:phone" json:"phone"`
	Active   bool    `gorm:"column:active;not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Worker) TableName() string {
	return "mandi_workers"
}

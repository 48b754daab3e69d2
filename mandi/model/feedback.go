package model

import "time"

// OrganiserFeedback is the end-of-day note to the market organiser. Either
// this or a NextDayPlan satisfies the shared feedback/planning slot.
type OrganiserFeedback struct {
	ID       string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID string  `gorm:"column:worker_id;index:idx_feedback_worker_date" json:"workerId"`
	MarketID *string `gorm:"column:market_id" json:"marketId"`
	Date     string  `gorm:"column:date;type:date;index:idx_feedback_worker_date" json:"date"`
	Message  string  `gorm:"column:message;type:text" json:"message"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (OrganiserFeedback) TableName() string {
	return "mandi_organiser_feedback"
}

// NextDayPlan records where the worker reports tomorrow.
type NextDayPlan struct {
	ID           string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID     string  `gorm:"column:worker_id;index:idx_plan_worker_date" json:"workerId"`
	MarketID     *string `gorm:"column:market_id" json:"marketId"`
	Date         string  `gorm:"column:date;type:date;index:idx_plan_worker_date" json:"date"`
	PlanDate     string  `gorm:"column:plan_date;type:date" json:"planDate"`
	PlanMarketID *string `gorm:"column:plan_market_id" json:"planMarketId"`
	Notes        string  `gorm:"column:notes;type:text" json:"notes"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (NextDayPlan) TableName() string {
	return "mandi_next_day_plans"
}

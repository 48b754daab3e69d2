package model

import "time"

// Media upload kinds. Upload bytes live elsewhere; only the row counts here.
const (
	MediaOutsideRates     = "outside_rates"
	MediaRateBoard        = "rate_board"
	MediaMarketVideo      = "market_video"
	MediaCleaningVideo    = "cleaning_video"
	MediaCustomerFeedback = "customer_feedback"
	MediaInspection       = "inspection"
)

type MediaUpload struct {
	ID        string  `gorm:"primaryKey;column:id" json:"id"`
	WorkerID  string  `gorm:"column:worker_id;index:idx_media_worker_date" json:"workerId"`
	MarketID  *string `gorm:"column:market_id" json:"marketId"`
	Date      string  `gorm:"column:date;type:date;index:idx_media_worker_date" json:"date"`
	Kind      string  `gorm:"column:kind;type:varchar(32);index" json:"kind"`
	ObjectKey string  `gorm:"column:object_key" json:"objectKey"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (MediaUpload) TableName() string {
	return "mandi_media_uploads"
}

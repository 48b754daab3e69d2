package model

import "time"

const (
	PunchKindIn  = "in"
	PunchKindOut = "out"
)

// AttendancePunch is one raw punch event from the field app. A worker-day is
// born on its first punch; the pair is derived, not stored.
type AttendancePunch struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	WorkerID  string    `gorm:"column:worker_id;index:idx_punch_worker_date" json:"workerId"`
	MarketID  *string   `gorm:"column:market_id" json:"marketId"`
	Date      string    `gorm:"column:date;type:date;index:idx_punch_worker_date" json:"date"`
	Kind      string    `gorm:"column:kind;type:varchar(8)" json:"kind"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
	DeviceID  string    `gorm:"column:device_id" json:"deviceId"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (AttendancePunch) TableName() string {
	return "mandi_attendance_punches"
}

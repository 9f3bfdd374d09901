package domain

import "time"

// AccessRequest is an append-only entry for each successful login or registration.
type AccessRequest struct {
	ID        int64     `db:"id" gorm:"column:id;primaryKey"`
	CenterID  int64     `db:"center_id" gorm:"column:center_id"`
	Timestamp time.Time `db:"timestamp" gorm:"column:timestamp"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}

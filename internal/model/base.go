package model

import "time"

// swagger:model
type BaseModel struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
}

// UnixNow returns the current time as unix seconds, the unit every
// time column in this module is stored in.
func UnixNow() int64 {
	return time.Now().Unix()
}

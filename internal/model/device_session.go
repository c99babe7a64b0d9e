package model

import "time"

// DeviceSession binds an anonymous customer device to a table for the
// duration of a dining session. The (table, device) pair is unique.
type DeviceSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"not null;uniqueIndex:ux_table_device,priority:1" json:"table_number"`
	DeviceID    string    `gorm:"size:128;not null;uniqueIndex:ux_table_device,priority:2" json:"device_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

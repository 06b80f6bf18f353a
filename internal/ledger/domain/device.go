package domain

import "time"

// Device records one returned unit. Informational only: the points awarded
// for it live in the accompanying Transaction.
type Device struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	StoreID      *string   `json:"store_id" gorm:"index"`
	DeviceType   string    `json:"device_type"`
	Brand        string    `json:"brand"`
	PointsEarned int       `json:"points_earned"`
	PhotoURL     string    `json:"photo_url"`
	CreatedAt    time.Time `json:"created_at"`
}

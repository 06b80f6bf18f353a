package domain

import "time"

// Promotion multiplies points earned on purchases inside its time window.
// A nil StoreID means the promotion applies storewide.
type Promotion struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Multiplier  float64   `json:"multiplier" gorm:"not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	StoreID     *string   `json:"store_id" gorm:"index"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

package domain

import "time"

// Reward is a catalog item points can be exchanged for. A nil StockQuantity
// means unlimited stock: no scarcity check applies.
type Reward struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description"`
	PointsCost    int       `json:"points_cost" gorm:"not null"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	StockQuantity *int      `json:"stock_quantity"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

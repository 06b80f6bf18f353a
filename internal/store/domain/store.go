package domain

import "time"

// Store is one retail location of the chain.
type Store struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Address      string    `json:"address"`
	City         string    `json:"city" gorm:"index"`
	Phone        string    `json:"phone"`
	WorkingHours string    `json:"working_hours"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

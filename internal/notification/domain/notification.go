package domain

import "time"

// Notification kinds shown in the mini app feed.
const (
	TypePointsEarned    = "points_earned"
	TypeRewardAvailable = "reward_available"
)

// Notification is the persisted, in-app copy of a user-facing event. The
// Telegram delivery of the same event is fire-and-forget and tracked nowhere.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

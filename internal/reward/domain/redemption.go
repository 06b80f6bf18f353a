package domain

import "time"

// RedemptionStatus is the redemption state machine: pending -> completed
// when staff confirm the token, pending -> cancelled otherwise. There is no
// transition out of a terminal state.
type RedemptionStatus string

const (
	StatusPending   RedemptionStatus = "pending"
	StatusCompleted RedemptionStatus = "completed"
	StatusCancelled RedemptionStatus = "cancelled"
)

// Redemption is one exchange of points for one reward unit. QRCode carries
// the single-use token; PointsSpent is a snapshot taken at creation and
// stays fixed even if the reward's price changes later.
type Redemption struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	UserID      string           `json:"user_id" gorm:"index;not null"`
	RewardID    string           `json:"reward_id" gorm:"index;not null"`
	QRCode      string           `json:"qr_code" gorm:"uniqueIndex;not null"`
	PointsSpent int              `json:"points_spent" gorm:"not null"`
	Status      RedemptionStatus `json:"status" gorm:"type:varchar(16);default:pending"`
	StoreID     *string          `json:"store_id"` // store that fulfilled the hand-off
	CreatedAt   time.Time        `json:"created_at"`
	RedeemedAt  *time.Time       `json:"redeemed_at"`
}

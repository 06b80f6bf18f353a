package dto

import (
	"time"

	rewarddomain "loyalty-backend/internal/reward/domain"
)

// RedemptionResult is returned from a successful redeem: the persisted row
// plus the rendered QR image the mini app shows to the cashier.
type RedemptionResult struct {
	Redemption  *rewarddomain.Redemption `json:"redemption"`
	RewardTitle string                   `json:"reward_title"`
	QRCodeImage string                   `json:"qr_code_image"`
}

// RedemptionRow is a redemption joined with reward and store details for the
// user's redemption list. QRCodeImage is only rendered for pending entries.
type RedemptionRow struct {
	ID                string                        `json:"id"`
	RewardID          string                        `json:"reward_id"`
	QRCode            string                        `json:"qr_code"`
	PointsSpent       int                           `json:"points_spent"`
	Status            rewarddomain.RedemptionStatus `json:"status"`
	CreatedAt         time.Time                     `json:"created_at"`
	RedeemedAt        *time.Time                    `json:"redeemed_at"`
	RewardTitle       string                        `json:"reward_title"`
	RewardDescription string                        `json:"reward_description"`
	ImageURL          string                        `json:"image_url"`
	StoreName         *string                       `json:"store_name"`
	QRCodeImage       string                        `json:"qr_code_image,omitempty"`
}

package dto

import (
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"
)

// PurchaseRequest credits points for a purchase. Amount is in minor
// currency units (kopecks).
type PurchaseRequest struct {
	UserTelegramID int64  `json:"user_telegram_id" binding:"required"`
	ReceiptNumber  string `json:"receipt_number"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
}

type DeviceReturnRequest struct {
	UserTelegramID int64  `json:"user_telegram_id" binding:"required"`
	DeviceType     string `json:"device_type"`
	Brand          string `json:"brand"`
	PhotoURL       string `json:"photo_url"`
}

type EarnResult struct {
	Transaction  *ledgerdomain.Transaction `json:"transaction"`
	PointsEarned int                       `json:"points_earned"`
	Multiplier   float64                   `json:"multiplier"`
}

type DeviceReturnResult struct {
	Device       *ledgerdomain.Device `json:"device"`
	PointsEarned int                  `json:"points_earned"`
}

// HistoryRow is a ledger entry joined with store and cashier names for the
// user's history screen.
type HistoryRow struct {
	ID               string                 `json:"id"`
	StoreID          *string                `json:"store_id"`
	Type             ledgerdomain.EntryKind `json:"type"`
	Points           int                    `json:"points"`
	Description      string                 `json:"description"`
	ReceiptNumber    string                 `json:"receipt_number"`
	CreatedAt        time.Time              `json:"created_at"`
	StoreName        *string                `json:"store_name"`
	CashierFirstName *string                `json:"cashier_first_name"`
	CashierLastName  *string                `json:"cashier_last_name"`
}

// UserStatistics aggregates a user's ledger for the profile screen.
type UserStatistics struct {
	TotalPurchases int64 `json:"total_purchases"`
	TotalDevices   int64 `json:"total_devices"`
	TotalRewards   int64 `json:"total_rewards"`
	TotalEarned    int64 `json:"total_earned"`
	TotalSpent     int64 `json:"total_spent"`
}

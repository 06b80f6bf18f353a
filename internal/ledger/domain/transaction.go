package domain

import "time"

// EntryKind is the fixed taxonomy of ledger entries.
type EntryKind string

const (
	KindPurchase       EntryKind = "purchase"
	KindDeviceReturn   EntryKind = "device_return"
	KindRewardExchange EntryKind = "reward_exchange"
)

// Transaction is one immutable ledger entry. Rows are append-only: a user's
// balance must always equal the sum of their transaction points.
type Transaction struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	StoreID       *string   `json:"store_id" gorm:"index"`
	CashierID     *string   `json:"cashier_id"`
	Type          EntryKind `json:"type" gorm:"type:varchar(32);not null"`
	Points        int       `json:"points" gorm:"not null"` // signed delta
	Description   string    `json:"description"`
	ReceiptNumber string    `json:"receipt_number"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

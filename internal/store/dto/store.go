package dto

import (
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"
)

// StoreStatistics aggregates a store's ledger activity for the staff
// dashboard.
type StoreStatistics struct {
	TotalCustomers      int64         `json:"total_customers"`
	TotalPurchases      int64         `json:"total_purchases"`
	TotalDevices        int64         `json:"total_devices"`
	TotalRewards        int64         `json:"total_rewards"`
	TotalPointsEarned   int64         `json:"total_points_earned"`
	TotalPointsSpent    int64         `json:"total_points_spent"`
	CustomersLast30Days int64         `json:"customers_last_30_days"`
	DevicesLast30Days   int64         `json:"devices_last_30_days"`
	TopCustomers        []TopCustomer `json:"top_customers"`
}

type TopCustomer struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Points           int    `json:"points"`
	TransactionCount int64  `json:"transaction_count"`
}

// StoreTransactionRow is a ledger entry joined with customer and cashier
// names for the store feed.
type StoreTransactionRow struct {
	ID               string                 `json:"id"`
	Type             ledgerdomain.EntryKind `json:"type"`
	Points           int                    `json:"points"`
	Description      string                 `json:"description"`
	ReceiptNumber    string                 `json:"receipt_number"`
	CreatedAt        time.Time              `json:"created_at"`
	FirstName        string                 `json:"first_name"`
	LastName         string                 `json:"last_name"`
	TelegramID       int64                  `json:"telegram_id"`
	CashierFirstName *string                `json:"cashier_first_name"`
	CashierLastName  *string                `json:"cashier_last_name"`
}

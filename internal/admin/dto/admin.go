package dto

import (
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"
)

// Overview is the network-wide headline figures block.
type Overview struct {
	TotalUsers            int64 `json:"total_users"`
	TotalStores           int64 `json:"total_stores"`
	TotalDevicesCollected int64 `json:"total_devices_collected"`
	TotalPurchases        int64 `json:"total_purchases"`
	TotalRewardsRedeemed  int64 `json:"total_rewards_redeemed"`
	TotalPointsIssued     int64 `json:"total_points_issued"`
}

type Recent struct {
	NewUsersLast30Days  int64 `json:"new_users_last_30_days"`
	DevicesLast30Days   int64 `json:"devices_last_30_days"`
	PurchasesLast30Days int64 `json:"purchases_last_30_days"`
}

type GeographyRow struct {
	City             string `json:"city"`
	TotalUsers       int64  `json:"total_users"`
	DevicesCollected int64  `json:"devices_collected"`
	PurchasesCount   int64  `json:"purchases_count"`
	PointsIssued     int64  `json:"points_issued"`
}

type StoreStatsRow struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city"`
	TotalCustomers   int64  `json:"total_customers"`
	DevicesCollected int64  `json:"devices_collected"`
	PurchasesCount   int64  `json:"purchases_count"`
	RewardsRedeemed  int64  `json:"rewards_redeemed"`
	PointsIssued     int64  `json:"points_issued"`
}

type TimelineRow struct {
	Date         time.Time `json:"date"`
	Purchases    int64     `json:"purchases"`
	Devices      int64     `json:"devices"`
	Rewards      int64     `json:"rewards"`
	PointsEarned int64     `json:"points_earned"`
}

// ReportRow is one line of the exported transaction report.
type ReportRow struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	StoreID          *string                `json:"store_id"`
	Type             ledgerdomain.EntryKind `json:"type"`
	Points           int                    `json:"points"`
	Description      string                 `json:"description"`
	ReceiptNumber    string                 `json:"receipt_number"`
	CreatedAt        time.Time              `json:"created_at"`
	FirstName        string                 `json:"first_name"`
	LastName         string                 `json:"last_name"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	StoreName        *string                `json:"store_name"`
	City             *string                `json:"city"`
	CashierFirstName *string                `json:"cashier_first_name"`
	CashierLastName  *string                `json:"cashier_last_name"`
}

type CreateRewardRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	PointsCost    int    `json:"points_cost" binding:"required,gt=0"`
	Category      string `json:"category"`
	ImageURL      string `json:"image_url"`
	StockQuantity *int   `json:"stock_quantity"`
}

// UpdateRewardRequest applies partial updates: nil fields keep their current
// value.
type UpdateRewardRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PointsCost    *int    `json:"points_cost"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"image_url"`
	StockQuantity *int    `json:"stock_quantity"`
	IsActive      *bool   `json:"is_active"`
}

type CreatePromotionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Multiplier  float64   `json:"multiplier" binding:"required,gt=0"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	StoreID     *string   `json:"store_id"`
}

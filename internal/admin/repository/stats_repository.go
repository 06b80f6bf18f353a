package repository

import (
	"time"

	admindto "loyalty-backend/internal/admin/dto"

	"gorm.io/gorm"
)

// StatsRepository runs the network-wide aggregate queries behind the admin
// dashboards. Read-only: every method is a pure query over the ledger.
type StatsRepository interface {
	Overview() (*admindto.Overview, error)
	Recent() (*admindto.Recent, error)
	Geography() ([]admindto.GeographyRow, error)
	StoreStats() ([]admindto.StoreStatsRow, error)
	Timeline(days int) ([]admindto.TimelineRow, error)
	Report(start, end *time.Time) ([]admindto.ReportRow, error)
}

// statsRepository implements StatsRepository on gorm
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new instance of statsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{
		db: db,
	}
}

func (r *statsRepository) Overview() (*admindto.Overview, error) {
	var overview admindto.Overview
	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'client') AS total_users,
			(SELECT COUNT(*) FROM stores WHERE is_active = true) AS total_stores,
			(SELECT COUNT(*) FROM devices) AS total_devices_collected,
			(SELECT COUNT(*) FROM transactions WHERE type = 'purchase') AS total_purchases,
			(SELECT COUNT(*) FROM redemptions WHERE status = 'completed') AS total_rewards_redeemed,
			(SELECT COALESCE(SUM(points), 0) FROM transactions WHERE type IN ('purchase', 'device_return')) AS total_points_issued`).
		Scan(&overview).Error
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func (r *statsRepository) Recent() (*admindto.Recent, error) {
	var recent admindto.Recent
	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'client' AND created_at >= CURRENT_TIMESTAMP - INTERVAL '30 days') AS new_users_last_30_days,
			(SELECT COUNT(*) FROM devices WHERE created_at >= CURRENT_TIMESTAMP - INTERVAL '30 days') AS devices_last_30_days,
			(SELECT COUNT(*) FROM transactions WHERE type = 'purchase' AND created_at >= CURRENT_TIMESTAMP - INTERVAL '30 days') AS purchases_last_30_days`).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	return &recent, nil
}

func (r *statsRepository) Geography() ([]admindto.GeographyRow, error) {
	var rows []admindto.GeographyRow
	err := r.db.Raw(`
		SELECT
			s.city,
			COUNT(DISTINCT t.user_id) AS total_users,
			COUNT(CASE WHEN t.type = 'device_return' THEN 1 END) AS devices_collected,
			COUNT(CASE WHEN t.type = 'purchase' THEN 1 END) AS purchases_count,
			COALESCE(SUM(CASE WHEN t.type = 'purchase' THEN t.points ELSE 0 END), 0) AS points_issued
		FROM stores s
		LEFT JOIN transactions t ON s.id = t.store_id
		WHERE s.is_active = true
		GROUP BY s.city
		ORDER BY devices_collected DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) StoreStats() ([]admindto.StoreStatsRow, error) {
	var rows []admindto.StoreStatsRow
	err := r.db.Raw(`
		SELECT
			s.id,
			s.name,
			s.city,
			COUNT(DISTINCT t.user_id) AS total_customers,
			COUNT(CASE WHEN t.type = 'device_return' THEN 1 END) AS devices_collected,
			COUNT(CASE WHEN t.type = 'purchase' THEN 1 END) AS purchases_count,
			COUNT(CASE WHEN t.type = 'reward_exchange' THEN 1 END) AS rewards_redeemed,
			COALESCE(SUM(CASE WHEN t.points > 0 THEN t.points ELSE 0 END), 0) AS points_issued
		FROM stores s
		LEFT JOIN transactions t ON s.id = t.store_id
		WHERE s.is_active = true
		GROUP BY s.id, s.name, s.city
		ORDER BY devices_collected DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) Timeline(days int) ([]admindto.TimelineRow, error) {
	var rows []admindto.TimelineRow
	err := r.db.Raw(`
		SELECT
			DATE(created_at) AS date,
			COUNT(CASE WHEN type = 'purchase' THEN 1 END) AS purchases,
			COUNT(CASE WHEN type = 'device_return' THEN 1 END) AS devices,
			COUNT(CASE WHEN type = 'reward_exchange' THEN 1 END) AS rewards,
			COALESCE(SUM(CASE WHEN points > 0 THEN points ELSE 0 END), 0) AS points_earned
		FROM transactions
		WHERE created_at >= CURRENT_TIMESTAMP - ? * INTERVAL '1 day'
		GROUP BY DATE(created_at)
		ORDER BY date DESC`, days).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) Report(start, end *time.Time) ([]admindto.ReportRow, error) {
	var rows []admindto.ReportRow
	err := r.db.Raw(`
		SELECT
			t.id, t.user_id, t.store_id, t.type, t.points, t.description, t.receipt_number, t.created_at,
			u.first_name, u.last_name, u.email, u.phone,
			s.name AS store_name, s.city,
			c.first_name AS cashier_first_name, c.last_name AS cashier_last_name
		FROM transactions t
		JOIN users u ON t.user_id = u.id
		LEFT JOIN stores s ON t.store_id = s.id
		LEFT JOIN users c ON t.cashier_id = c.id
		WHERE t.created_at >= COALESCE(?::timestamptz, CURRENT_TIMESTAMP - INTERVAL '30 days')
		AND t.created_at <= COALESCE(?::timestamptz, CURRENT_TIMESTAMP)
		ORDER BY t.created_at DESC`, start, end).
		Scan(&rows).Error
	return rows, err
}

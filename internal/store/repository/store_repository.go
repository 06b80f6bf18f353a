package repository

import (
	"errors"
	"time"

	storedomain "loyalty-backend/internal/store/domain"
	storedto "loyalty-backend/internal/store/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository stores retail locations and their ledger aggregates.
type StoreRepository interface {
	Create(store *storedomain.Store) error
	ListActive(city string) ([]storedomain.Store, error)
	FindActiveByID(id string) (*storedomain.Store, error)
	Statistics(storeID string) (*storedto.StoreStatistics, error)
	Transactions(storeID, kind string, limit, offset int) ([]storedto.StoreTransactionRow, int64, error)
}

// storeRepository implements StoreRepository on gorm
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new instance of storeRepository
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{
		db: db,
	}
}

func (r *storeRepository) Create(store *storedomain.Store) error {
	store.ID = uuid.New().String()
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()
	return r.db.Create(store).Error
}

func (r *storeRepository) ListActive(city string) ([]storedomain.Store, error) {
	var stores []storedomain.Store
	query := r.db.Where("is_active = ?", true)
	if city != "" {
		query = query.Where("city = ?", city)
	}
	err := query.Order("name").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) FindActiveByID(id string) (*storedomain.Store, error) {
	var store storedomain.Store
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Statistics(storeID string) (*storedto.StoreStatistics, error) {
	var stats storedto.StoreStatistics
	err := r.db.Raw(`
		SELECT
			COUNT(DISTINCT t.user_id) AS total_customers,
			COUNT(CASE WHEN t.type = 'purchase' THEN 1 END) AS total_purchases,
			COUNT(CASE WHEN t.type = 'device_return' THEN 1 END) AS total_devices,
			COUNT(CASE WHEN t.type = 'reward_exchange' THEN 1 END) AS total_rewards,
			COALESCE(SUM(CASE WHEN t.type = 'purchase' THEN t.points ELSE 0 END), 0) AS total_points_earned,
			COALESCE(SUM(CASE WHEN t.type = 'reward_exchange' THEN ABS(t.points) ELSE 0 END), 0) AS total_points_spent
		FROM transactions t
		WHERE t.store_id = ?`, storeID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT
			COUNT(DISTINCT t.user_id) AS customers_last_30_days,
			COUNT(CASE WHEN t.type = 'device_return' THEN 1 END) AS devices_last_30_days
		FROM transactions t
		WHERE t.store_id = ?
		AND t.created_at >= CURRENT_TIMESTAMP - INTERVAL '30 days'`, storeID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT u.id, u.first_name, u.last_name, u.points,
			COUNT(t.id) AS transaction_count
		FROM users u
		JOIN transactions t ON u.id = t.user_id
		WHERE t.store_id = ?
		GROUP BY u.id, u.first_name, u.last_name, u.points
		ORDER BY u.points DESC
		LIMIT 5`, storeID).
		Scan(&stats.TopCustomers).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *storeRepository) Transactions(storeID, kind string, limit, offset int) ([]storedto.StoreTransactionRow, int64, error) {
	var rows []storedto.StoreTransactionRow
	query := r.db.Table("transactions t").
		Select(`t.id, t.type, t.points, t.description, t.receipt_number, t.created_at,
			u.first_name, u.last_name, u.telegram_id,
			c.first_name AS cashier_first_name, c.last_name AS cashier_last_name`).
		Joins("JOIN users u ON t.user_id = u.id").
		Joins("LEFT JOIN users c ON t.cashier_id = c.id").
		Where("t.store_id = ?", storeID)
	if kind != "" {
		query = query.Where("t.type = ?", kind)
	}
	err := query.Order("t.created_at DESC").Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	countQuery := r.db.Table("transactions").Where("store_id = ?", storeID)
	if kind != "" {
		countQuery = countQuery.Where("type = ?", kind)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

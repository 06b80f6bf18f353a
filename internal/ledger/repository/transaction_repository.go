package repository

import (
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerdto "loyalty-backend/internal/ledger/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository is the append-only ledger store. There is no update
// or delete: entries are immutable once written.
type TransactionRepository interface {
	CreateTx(tx *gorm.DB, transaction *ledgerdomain.Transaction) error
	HistoryByUser(userID string, limit, offset int) ([]ledgerdto.HistoryRow, int64, error)
	UserStatistics(userID string) (*ledgerdto.UserStatistics, error)
}

// transactionRepository implements TransactionRepository on gorm
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new instance of transactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) CreateTx(tx *gorm.DB, transaction *ledgerdomain.Transaction) error {
	transaction.ID = uuid.New().String()
	transaction.CreatedAt = time.Now()
	return tx.Create(transaction).Error
}

func (r *transactionRepository) HistoryByUser(userID string, limit, offset int) ([]ledgerdto.HistoryRow, int64, error) {
	var rows []ledgerdto.HistoryRow
	err := r.db.Table("transactions t").
		Select(`t.id, t.store_id, t.type, t.points, t.description, t.receipt_number, t.created_at,
			s.name AS store_name, c.first_name AS cashier_first_name, c.last_name AS cashier_last_name`).
		Joins("LEFT JOIN stores s ON t.store_id = s.id").
		Joins("LEFT JOIN users c ON t.cashier_id = c.id").
		Where("t.user_id = ?", userID).
		Order("t.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = r.db.Model(&ledgerdomain.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *transactionRepository) UserStatistics(userID string) (*ledgerdto.UserStatistics, error) {
	var stats ledgerdto.UserStatistics
	err := r.db.Raw(`
		SELECT
			COUNT(CASE WHEN type = 'purchase' THEN 1 END) AS total_purchases,
			COUNT(CASE WHEN type = 'device_return' THEN 1 END) AS total_devices,
			COUNT(CASE WHEN type = 'reward_exchange' THEN 1 END) AS total_rewards,
			COALESCE(SUM(CASE WHEN points > 0 THEN points ELSE 0 END), 0) AS total_earned,
			COALESCE(SUM(CASE WHEN points < 0 THEN ABS(points) ELSE 0 END), 0) AS total_spent
		FROM transactions
		WHERE user_id = ?`, userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

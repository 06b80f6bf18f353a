package repository

import (
	"errors"
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromotionRepository stores purchase-point promotions.
type PromotionRepository interface {
	Create(promotion *ledgerdomain.Promotion) error
	// ActiveMultiplier returns the multiplier of the best currently active
	// promotion for the store (store-scoped or storewide), 1.0 when none.
	ActiveMultiplier(tx *gorm.DB, storeID *string) (float64, error)
}

// promotionRepository implements PromotionRepository on gorm
type promotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new instance of promotionRepository
func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{
		db: db,
	}
}

func (r *promotionRepository) Create(promotion *ledgerdomain.Promotion) error {
	promotion.ID = uuid.New().String()
	promotion.CreatedAt = time.Now()
	return r.db.Create(promotion).Error
}

func (r *promotionRepository) ActiveMultiplier(tx *gorm.DB, storeID *string) (float64, error) {
	now := time.Now()

	var promotion ledgerdomain.Promotion
	err := tx.Where("is_active = ?", true).
		Where("store_id = ? OR store_id IS NULL", storeID).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("multiplier DESC").
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 1.0, nil
		}
		return 0, err
	}
	return promotion.Multiplier, nil
}

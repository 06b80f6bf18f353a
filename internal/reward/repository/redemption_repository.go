package repository

import (
	"errors"
	"time"

	rewarddomain "loyalty-backend/internal/reward/domain"
	rewarddto "loyalty-backend/internal/reward/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RedemptionRepository stores reward redemptions. LockPendingByQRCode only
// matches status=pending rows, which is what makes a second confirmation of
// the same token structurally impossible.
type RedemptionRepository interface {
	CreateTx(tx *gorm.DB, redemption *rewarddomain.Redemption) error
	LockPendingByQRCode(tx *gorm.DB, qrCode string) (*rewarddomain.Redemption, error)
	CompleteTx(tx *gorm.DB, id string, storeID *string, redeemedAt time.Time) error
	ListByUser(userID string) ([]rewarddto.RedemptionRow, error)
}

// redemptionRepository implements RedemptionRepository on gorm
type redemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository creates a new instance of redemptionRepository
func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{
		db: db,
	}
}

func (r *redemptionRepository) CreateTx(tx *gorm.DB, redemption *rewarddomain.Redemption) error {
	redemption.ID = uuid.New().String()
	redemption.CreatedAt = time.Now()
	return tx.Create(redemption).Error
}

func (r *redemptionRepository) LockPendingByQRCode(tx *gorm.DB, qrCode string) (*rewarddomain.Redemption, error) {
	var redemption rewarddomain.Redemption
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("qr_code = ? AND status = ?", qrCode, rewarddomain.StatusPending).
		First(&redemption).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &redemption, nil
}

func (r *redemptionRepository) CompleteTx(tx *gorm.DB, id string, storeID *string, redeemedAt time.Time) error {
	return tx.Model(&rewarddomain.Redemption{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      rewarddomain.StatusCompleted,
			"store_id":    storeID,
			"redeemed_at": redeemedAt,
		}).Error
}

func (r *redemptionRepository) ListByUser(userID string) ([]rewarddto.RedemptionRow, error) {
	var rows []rewarddto.RedemptionRow
	err := r.db.Table("redemptions rr").
		Select(`rr.id, rr.reward_id, rr.qr_code, rr.points_spent, rr.status, rr.created_at, rr.redeemed_at,
			r.title AS reward_title, r.description AS reward_description, r.image_url,
			s.name AS store_name`).
		Joins("JOIN rewards r ON rr.reward_id = r.id").
		Joins("LEFT JOIN stores s ON rr.store_id = s.id").
		Where("rr.user_id = ?", userID).
		Order("rr.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

package repository

import (
	"errors"
	"time"

	rewarddomain "loyalty-backend/internal/reward/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RewardRepository stores the reward catalog. LockActiveByID holds a FOR
// UPDATE lock so stock checks and decrements are serialized per reward.
type RewardRepository interface {
	Create(reward *rewarddomain.Reward) error
	Save(reward *rewarddomain.Reward) error
	Deactivate(id string) error
	ListActive(category string, limit int) ([]rewarddomain.Reward, error)
	FindActiveByID(id string) (*rewarddomain.Reward, error)
	FindByID(id string) (*rewarddomain.Reward, error)

	LockActiveByID(tx *gorm.DB, id string) (*rewarddomain.Reward, error)
	DecrementStock(tx *gorm.DB, id string) error
}

// rewardRepository implements RewardRepository on gorm
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository creates a new instance of rewardRepository
func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{
		db: db,
	}
}

func (r *rewardRepository) Create(reward *rewarddomain.Reward) error {
	reward.ID = uuid.New().String()
	reward.CreatedAt = time.Now()
	reward.UpdatedAt = time.Now()
	return r.db.Create(reward).Error
}

func (r *rewardRepository) Save(reward *rewarddomain.Reward) error {
	reward.UpdatedAt = time.Now()
	return r.db.Save(reward).Error
}

func (r *rewardRepository) Deactivate(id string) error {
	return r.db.Model(&rewarddomain.Reward{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *rewardRepository) ListActive(category string, limit int) ([]rewarddomain.Reward, error) {
	var rewards []rewarddomain.Reward
	query := r.db.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("points_cost ASC").Limit(limit).Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) FindActiveByID(id string) (*rewarddomain.Reward, error) {
	var reward rewarddomain.Reward
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) FindByID(id string) (*rewarddomain.Reward, error) {
	var reward rewarddomain.Reward
	err := r.db.Where("id = ?", id).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) LockActiveByID(tx *gorm.DB, id string) (*rewarddomain.Reward, error) {
	var reward rewarddomain.Reward
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_active = ?", id, true).
		First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// DecrementStock assumes the caller holds the reward's row lock and has
// already verified the stock is finite and positive.
func (r *rewardRepository) DecrementStock(tx *gorm.DB, id string) error {
	return tx.Model(&rewarddomain.Reward{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - 1")).Error
}

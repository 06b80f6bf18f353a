package repository

import (
	"errors"
	"time"

	authdomain "loyalty-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository is the persistence boundary for user accounts. Lock*
// methods run against an open transaction and hold a FOR UPDATE row lock
// until that transaction finishes.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByTelegramID(telegramID int64) (*authdomain.User, error)
	Update(user *authdomain.User) error
	UpdateContacts(telegramID int64, phone, email string) (*authdomain.User, error)
	List(role string, limit, offset int) ([]authdomain.User, error)

	LockByID(tx *gorm.DB, id string) (*authdomain.User, error)
	LockByTelegramID(tx *gorm.DB, telegramID int64) (*authdomain.User, error)
	AddPoints(tx *gorm.DB, userID string, delta int) error
}

// userRepository implements UserRepository on gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByTelegramID(telegramID int64) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

// UpdateContacts refreshes phone/email, keeping existing values when the
// incoming field is empty (COALESCE semantics).
func (r *userRepository) UpdateContacts(telegramID int64, phone, email string) (*authdomain.User, error) {
	user, err := r.FindByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if phone != "" {
		user.Phone = phone
	}
	if email != "" {
		user.Email = email
	}
	if err := r.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(role string, limit, offset int) ([]authdomain.User, error) {
	var users []authdomain.User
	query := r.db.Model(&authdomain.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *userRepository) LockByID(tx *gorm.DB, id string) (*authdomain.User, error) {
	var user authdomain.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) LockByTelegramID(tx *gorm.DB, telegramID int64) (*authdomain.User, error) {
	var user authdomain.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("telegram_id = ?", telegramID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AddPoints applies a signed delta to the user's balance. Callers must hold
// the row lock when the delta depends on a prior balance read.
func (r *userRepository) AddPoints(tx *gorm.DB, userID string, delta int) error {
	return tx.Model(&authdomain.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", delta)).Error
}

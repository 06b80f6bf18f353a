package repository

import (
	"time"

	notifdomain "loyalty-backend/internal/notification/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository persists the in-app notification feed. CreateTx
// runs against the caller's transaction so the feed entry commits together
// with the ledger change that produced it.
type NotificationRepository interface {
	CreateTx(tx *gorm.DB, notification *notifdomain.Notification) error
	ListByUser(userID string, limit int) ([]notifdomain.Notification, error)
	CountUnread(userID string) (int64, error)
	MarkRead(userID, notificationID string) error
}

// notificationRepository implements NotificationRepository on gorm
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of notificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) CreateTx(tx *gorm.DB, notification *notifdomain.Notification) error {
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now()
	return tx.Create(notification).Error
}

func (r *notificationRepository) ListByUser(userID string, limit int) ([]notifdomain.Notification, error) {
	var notifications []notifdomain.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&notifdomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	return r.db.Model(&notifdomain.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

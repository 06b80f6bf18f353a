package repository

import (
	"time"

	ledgerdomain "loyalty-backend/internal/ledger/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeviceRepository stores returned-device records.
type DeviceRepository interface {
	CreateTx(tx *gorm.DB, device *ledgerdomain.Device) error
}

// deviceRepository implements DeviceRepository on gorm
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new instance of deviceRepository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

func (r *deviceRepository) CreateTx(tx *gorm.DB, device *ledgerdomain.Device) error {
	device.ID = uuid.New().String()
	device.CreatedAt = time.Now()
	return tx.Create(device).Error
}

package usecase

import (
	authdomain "loyalty-backend/internal/auth/domain"
	storedomain "loyalty-backend/internal/store/domain"
	storedto "loyalty-backend/internal/store/dto"
	"loyalty-backend/internal/store/repository"
)

// StoreUsecase serves the store catalog and per-store staff dashboards.
type StoreUsecase interface {
	List(city string) ([]storedomain.Store, error)
	Get(id string) (*storedomain.Store, error)
	Statistics(actor *authdomain.User, storeID string) (*storedto.StoreStatistics, error)
	Transactions(actor *authdomain.User, storeID, kind string, limit, offset int) ([]storedto.StoreTransactionRow, int64, error)
}

// storeUsecase implements StoreUsecase
type storeUsecase struct {
	storeRepo repository.StoreRepository
}

// NewStoreUsecase creates a new instance of storeUsecase
func NewStoreUsecase(storeRepo repository.StoreRepository) StoreUsecase {
	return &storeUsecase{
		storeRepo: storeRepo,
	}
}

func (u *storeUsecase) List(city string) ([]storedomain.Store, error) {
	return u.storeRepo.ListActive(city)
}

func (u *storeUsecase) Get(id string) (*storedomain.Store, error) {
	store, err := u.storeRepo.FindActiveByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, storedomain.ErrStoreNotFound
	}
	return store, nil
}

// canViewStore: admins see every store, cashiers only their own.
func canViewStore(actor *authdomain.User, storeID string) bool {
	if !actor.Role.IsStaff() {
		return false
	}
	if actor.Role.IsAdmin() {
		return true
	}
	return actor.StoreID != nil && *actor.StoreID == storeID
}

func (u *storeUsecase) Statistics(actor *authdomain.User, storeID string) (*storedto.StoreStatistics, error) {
	if !canViewStore(actor, storeID) {
		return nil, authdomain.ErrForbidden
	}
	return u.storeRepo.Statistics(storeID)
}

func (u *storeUsecase) Transactions(actor *authdomain.User, storeID, kind string, limit, offset int) ([]storedto.StoreTransactionRow, int64, error) {
	if !canViewStore(actor, storeID) {
		return nil, 0, authdomain.ErrForbidden
	}
	return u.storeRepo.Transactions(storeID, kind, limit, offset)
}

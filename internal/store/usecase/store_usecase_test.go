package usecase

import (
	"testing"

	authdomain "loyalty-backend/internal/auth/domain"
	storedomain "loyalty-backend/internal/store/domain"
	storedto "loyalty-backend/internal/store/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoreRepository struct {
	stores map[string]*storedomain.Store
}

func (f *fakeStoreRepository) Create(store *storedomain.Store) error {
	f.stores[store.ID] = store
	return nil
}

func (f *fakeStoreRepository) ListActive(city string) ([]storedomain.Store, error) {
	var stores []storedomain.Store
	for _, store := range f.stores {
		if store.IsActive && (city == "" || store.City == city) {
			stores = append(stores, *store)
		}
	}
	return stores, nil
}

func (f *fakeStoreRepository) FindActiveByID(id string) (*storedomain.Store, error) {
	store, ok := f.stores[id]
	if !ok || !store.IsActive {
		return nil, nil
	}
	return store, nil
}

func (f *fakeStoreRepository) Statistics(storeID string) (*storedto.StoreStatistics, error) {
	return &storedto.StoreStatistics{TotalCustomers: 7}, nil
}

func (f *fakeStoreRepository) Transactions(storeID, kind string, limit, offset int) ([]storedto.StoreTransactionRow, int64, error) {
	return nil, 0, nil
}

func newStoreUsecaseForTest() StoreUsecase {
	return NewStoreUsecase(&fakeStoreRepository{
		stores: map[string]*storedomain.Store{
			"store-1": {ID: "store-1", Name: "Точка на Тверской", City: "Москва", IsActive: true},
			"store-2": {ID: "store-2", Name: "Закрытая точка", City: "Москва", IsActive: false},
		},
	})
}

func TestGetUnknownStore(t *testing.T) {
	uc := newStoreUsecaseForTest()

	_, err := uc.Get("no-such-store")
	assert.ErrorIs(t, err, storedomain.ErrStoreNotFound)
}

func TestGetInactiveStoreHidden(t *testing.T) {
	uc := newStoreUsecaseForTest()

	_, err := uc.Get("store-2")
	assert.ErrorIs(t, err, storedomain.ErrStoreNotFound)
}

func TestStatisticsAccess(t *testing.T) {
	uc := newStoreUsecaseForTest()
	own := "store-1"
	other := "store-2"

	tests := []struct {
		name    string
		actor   *authdomain.User
		storeID string
		allowed bool
	}{
		{"client denied", &authdomain.User{Role: authdomain.RoleClient}, "store-1", false},
		{"cashier own store", &authdomain.User{Role: authdomain.RoleCashier, StoreID: &own}, "store-1", true},
		{"cashier other store denied", &authdomain.User{Role: authdomain.RoleCashier, StoreID: &other}, "store-1", false},
		{"cashier without store denied", &authdomain.User{Role: authdomain.RoleCashier}, "store-1", false},
		{"admin any store", &authdomain.User{Role: authdomain.RoleAdmin}, "store-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := uc.Statistics(tt.actor, tt.storeID)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, int64(7), stats.TotalCustomers)
			} else {
				assert.ErrorIs(t, err, authdomain.ErrForbidden)
			}
		})
	}
}

func TestTransactionsAccess(t *testing.T) {
	uc := newStoreUsecaseForTest()
	other := "store-2"

	actor := &authdomain.User{Role: authdomain.RoleCashier, StoreID: &other}
	_, _, err := uc.Transactions(actor, "store-1", "", 50, 0)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}

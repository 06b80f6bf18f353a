package usecase

import (
	"testing"
	"time"

	admindto "loyalty-backend/internal/admin/dto"
	authdomain "loyalty-backend/internal/auth/domain"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	rewarddomain "loyalty-backend/internal/reward/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRewardRepository struct {
	rewards map[string]*rewarddomain.Reward
}

func newFakeRewardRepository() *fakeRewardRepository {
	return &fakeRewardRepository{rewards: make(map[string]*rewarddomain.Reward)}
}

func (f *fakeRewardRepository) Create(reward *rewarddomain.Reward) error {
	reward.ID = uuid.New().String()
	f.rewards[reward.ID] = reward
	return nil
}

func (f *fakeRewardRepository) Save(reward *rewarddomain.Reward) error {
	f.rewards[reward.ID] = reward
	return nil
}

func (f *fakeRewardRepository) Deactivate(id string) error {
	if reward, ok := f.rewards[id]; ok {
		reward.IsActive = false
	}
	return nil
}

func (f *fakeRewardRepository) ListActive(category string, limit int) ([]rewarddomain.Reward, error) {
	var rewards []rewarddomain.Reward
	for _, reward := range f.rewards {
		if reward.IsActive {
			rewards = append(rewards, *reward)
		}
	}
	return rewards, nil
}

func (f *fakeRewardRepository) FindActiveByID(id string) (*rewarddomain.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok || !reward.IsActive {
		return nil, nil
	}
	return reward, nil
}

func (f *fakeRewardRepository) FindByID(id string) (*rewarddomain.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, nil
	}
	return reward, nil
}

func (f *fakeRewardRepository) LockActiveByID(tx *gorm.DB, id string) (*rewarddomain.Reward, error) {
	return f.FindActiveByID(id)
}

func (f *fakeRewardRepository) DecrementStock(tx *gorm.DB, id string) error {
	if reward, ok := f.rewards[id]; ok && reward.StockQuantity != nil {
		*reward.StockQuantity--
	}
	return nil
}

type fakePromotionRepository struct {
	created []*ledgerdomain.Promotion
}

func (f *fakePromotionRepository) Create(promotion *ledgerdomain.Promotion) error {
	promotion.ID = uuid.New().String()
	f.created = append(f.created, promotion)
	return nil
}

func (f *fakePromotionRepository) ActiveMultiplier(tx *gorm.DB, storeID *string) (float64, error) {
	return 1.0, nil
}

var (
	adminActor   = &authdomain.User{ID: "admin-1", Role: authdomain.RoleAdmin}
	cashierActor = &authdomain.User{ID: "cashier-1", Role: authdomain.RoleCashier}
)

func newAdminUsecaseForTest(rewardRepo *fakeRewardRepository, promoRepo *fakePromotionRepository) AdminUsecase {
	return NewAdminUsecase(nil, rewardRepo, promoRepo, nil)
}

func TestEveryMethodRequiresAdmin(t *testing.T) {
	uc := newAdminUsecaseForTest(newFakeRewardRepository(), &fakePromotionRepository{})

	_, _, err := uc.Overview(cashierActor)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.Geography(cashierActor)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.StoreStats(cashierActor)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.Timeline(cashierActor, 30)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.Report(cashierActor, nil, nil)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.CreateReward(cashierActor, &admindto.CreateRewardRequest{})
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.UpdateReward(cashierActor, "reward-1", &admindto.UpdateRewardRequest{})
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	err = uc.DeactivateReward(cashierActor, "reward-1")
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.CreatePromotion(cashierActor, &admindto.CreatePromotionRequest{})
	assert.ErrorIs(t, err, authdomain.ErrForbidden)

	_, err = uc.ListUsers(cashierActor, "", 100, 0)
	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}

func TestCreateReward(t *testing.T) {
	rewardRepo := newFakeRewardRepository()
	uc := newAdminUsecaseForTest(rewardRepo, &fakePromotionRepository{})

	stock := 10
	reward, err := uc.CreateReward(adminActor, &admindto.CreateRewardRequest{
		Title:         "Скидка 10%",
		PointsCost:    500,
		Category:      "discount",
		StockQuantity: &stock,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, reward.ID)
	assert.True(t, reward.IsActive)
	require.NotNil(t, reward.StockQuantity)
	assert.Equal(t, 10, *reward.StockQuantity)
}

func TestUpdateRewardPartial(t *testing.T) {
	rewardRepo := newFakeRewardRepository()
	uc := newAdminUsecaseForTest(rewardRepo, &fakePromotionRepository{})

	created, err := uc.CreateReward(adminActor, &admindto.CreateRewardRequest{
		Title:      "Скидка 10%",
		PointsCost: 500,
		Category:   "discount",
	})
	require.NoError(t, err)

	newCost := 400
	updated, err := uc.UpdateReward(adminActor, created.ID, &admindto.UpdateRewardRequest{
		PointsCost: &newCost,
	})
	require.NoError(t, err)

	// Untouched fields survive the partial update.
	assert.Equal(t, 400, updated.PointsCost)
	assert.Equal(t, "Скидка 10%", updated.Title)
	assert.Equal(t, "discount", updated.Category)
}

func TestUpdateRewardUnknown(t *testing.T) {
	uc := newAdminUsecaseForTest(newFakeRewardRepository(), &fakePromotionRepository{})

	_, err := uc.UpdateReward(adminActor, "no-such-reward", &admindto.UpdateRewardRequest{})
	assert.ErrorIs(t, err, rewarddomain.ErrRewardNotFound)
}

func TestDeactivateRewardHidesFromCatalog(t *testing.T) {
	rewardRepo := newFakeRewardRepository()
	uc := newAdminUsecaseForTest(rewardRepo, &fakePromotionRepository{})

	created, err := uc.CreateReward(adminActor, &admindto.CreateRewardRequest{Title: "Скидка", PointsCost: 100})
	require.NoError(t, err)

	require.NoError(t, uc.DeactivateReward(adminActor, created.ID))

	active, err := rewardRepo.FindActiveByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCreatePromotion(t *testing.T) {
	promoRepo := &fakePromotionRepository{}
	uc := newAdminUsecaseForTest(newFakeRewardRepository(), promoRepo)

	storeID := "store-1"
	promotion, err := uc.CreatePromotion(adminActor, &admindto.CreatePromotionRequest{
		Title:      "Двойные баллы",
		Multiplier: 2.0,
		StartDate:  time.Now(),
		EndDate:    time.Now().Add(48 * time.Hour),
		StoreID:    &storeID,
	})
	require.NoError(t, err)

	assert.True(t, promotion.IsActive)
	assert.Equal(t, 2.0, promotion.Multiplier)
	require.Len(t, promoRepo.created, 1)
}

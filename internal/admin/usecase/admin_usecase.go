package usecase

import (
	"time"

	admindto "loyalty-backend/internal/admin/dto"
	adminrepo "loyalty-backend/internal/admin/repository"
	authdomain "loyalty-backend/internal/auth/domain"
	authrepo "loyalty-backend/internal/auth/repository"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerrepo "loyalty-backend/internal/ledger/repository"
	rewarddomain "loyalty-backend/internal/reward/domain"
	rewardrepo "loyalty-backend/internal/reward/repository"
)

// AdminUsecase covers network-wide management: statistics dashboards,
// reward and promotion catalogs, the user directory, and report export.
// Every method is gated on the admin role.
type AdminUsecase interface {
	Overview(actor *authdomain.User) (*admindto.Overview, *admindto.Recent, error)
	Geography(actor *authdomain.User) ([]admindto.GeographyRow, error)
	StoreStats(actor *authdomain.User) ([]admindto.StoreStatsRow, error)
	Timeline(actor *authdomain.User, days int) ([]admindto.TimelineRow, error)
	Report(actor *authdomain.User, start, end *time.Time) ([]admindto.ReportRow, error)

	CreateReward(actor *authdomain.User, req *admindto.CreateRewardRequest) (*rewarddomain.Reward, error)
	UpdateReward(actor *authdomain.User, id string, req *admindto.UpdateRewardRequest) (*rewarddomain.Reward, error)
	DeactivateReward(actor *authdomain.User, id string) error

	CreatePromotion(actor *authdomain.User, req *admindto.CreatePromotionRequest) (*ledgerdomain.Promotion, error)

	ListUsers(actor *authdomain.User, role string, limit, offset int) ([]authdomain.User, error)
}

// adminUsecase implements AdminUsecase
type adminUsecase struct {
	statsRepo  adminrepo.StatsRepository
	rewardRepo rewardrepo.RewardRepository
	promoRepo  ledgerrepo.PromotionRepository
	userRepo   authrepo.UserRepository
}

// NewAdminUsecase creates a new instance of adminUsecase
func NewAdminUsecase(
	statsRepo adminrepo.StatsRepository,
	rewardRepo rewardrepo.RewardRepository,
	promoRepo ledgerrepo.PromotionRepository,
	userRepo authrepo.UserRepository,
) AdminUsecase {
	return &adminUsecase{
		statsRepo:  statsRepo,
		rewardRepo: rewardRepo,
		promoRepo:  promoRepo,
		userRepo:   userRepo,
	}
}

func requireAdmin(actor *authdomain.User) error {
	if !actor.Role.IsAdmin() {
		return authdomain.ErrForbidden
	}
	return nil
}

func (u *adminUsecase) Overview(actor *authdomain.User) (*admindto.Overview, *admindto.Recent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}

	overview, err := u.statsRepo.Overview()
	if err != nil {
		return nil, nil, err
	}
	recent, err := u.statsRepo.Recent()
	if err != nil {
		return nil, nil, err
	}
	return overview, recent, nil
}

func (u *adminUsecase) Geography(actor *authdomain.User) ([]admindto.GeographyRow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return u.statsRepo.Geography()
}

func (u *adminUsecase) StoreStats(actor *authdomain.User) ([]admindto.StoreStatsRow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return u.statsRepo.StoreStats()
}

func (u *adminUsecase) Timeline(actor *authdomain.User, days int) ([]admindto.TimelineRow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if days <= 0 || days > 365 {
		days = 30
	}
	return u.statsRepo.Timeline(days)
}

func (u *adminUsecase) Report(actor *authdomain.User, start, end *time.Time) ([]admindto.ReportRow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return u.statsRepo.Report(start, end)
}

func (u *adminUsecase) CreateReward(actor *authdomain.User, req *admindto.CreateRewardRequest) (*rewarddomain.Reward, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	reward := &rewarddomain.Reward{
		Title:         req.Title,
		Description:   req.Description,
		PointsCost:    req.PointsCost,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if err := u.rewardRepo.Create(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (u *adminUsecase) UpdateReward(actor *authdomain.User, id string, req *admindto.UpdateRewardRequest) (*rewarddomain.Reward, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	reward, err := u.rewardRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, rewarddomain.ErrRewardNotFound
	}

	if req.Title != nil {
		reward.Title = *req.Title
	}
	if req.Description != nil {
		reward.Description = *req.Description
	}
	if req.PointsCost != nil {
		reward.PointsCost = *req.PointsCost
	}
	if req.Category != nil {
		reward.Category = *req.Category
	}
	if req.ImageURL != nil {
		reward.ImageURL = *req.ImageURL
	}
	if req.StockQuantity != nil {
		reward.StockQuantity = req.StockQuantity
	}
	if req.IsActive != nil {
		reward.IsActive = *req.IsActive
	}

	if err := u.rewardRepo.Save(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (u *adminUsecase) DeactivateReward(actor *authdomain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return u.rewardRepo.Deactivate(id)
}

func (u *adminUsecase) CreatePromotion(actor *authdomain.User, req *admindto.CreatePromotionRequest) (*ledgerdomain.Promotion, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	promotion := &ledgerdomain.Promotion{
		Title:       req.Title,
		Description: req.Description,
		Multiplier:  req.Multiplier,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StoreID:     req.StoreID,
		IsActive:    true,
	}
	if err := u.promoRepo.Create(promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

func (u *adminUsecase) ListUsers(actor *authdomain.User, role string, limit, offset int) ([]authdomain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return u.userRepo.List(role, limit, offset)
}

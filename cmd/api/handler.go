package api

import (
	admindelivery "loyalty-backend/internal/admin/delivery"
	adminusecase "loyalty-backend/internal/admin/usecase"
	authdelivery "loyalty-backend/internal/auth/delivery"
	authusecase "loyalty-backend/internal/auth/usecase"
	ledgerdelivery "loyalty-backend/internal/ledger/delivery"
	ledgerusecase "loyalty-backend/internal/ledger/usecase"
	notifdelivery "loyalty-backend/internal/notification/delivery"
	notifrepo "loyalty-backend/internal/notification/repository"
	rewarddelivery "loyalty-backend/internal/reward/delivery"
	rewardusecase "loyalty-backend/internal/reward/usecase"
	storedelivery "loyalty-backend/internal/store/delivery"
	storeusecase "loyalty-backend/internal/store/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handler wires the feature handlers into one gin engine.
type Handler struct {
	engine      *gin.Engine
	authUsecase authusecase.AuthUsecase
}

func NewHandler(
	authUc authusecase.AuthUsecase,
	ledgerUc ledgerusecase.LedgerUsecase,
	rewardUc rewardusecase.RewardUsecase,
	storeUc storeusecase.StoreUsecase,
	adminUc adminusecase.AdminUsecase,
	notificationRepo notifrepo.NotificationRepository,
) *Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	h := &Handler{
		engine:      engine,
		authUsecase: authUc,
	}

	SetupRoutes(
		engine,
		authUc,
		authdelivery.NewAuthHandler(authUc),
		ledgerdelivery.NewLedgerHandler(ledgerUc),
		rewarddelivery.NewRewardHandler(rewardUc),
		storedelivery.NewStoreHandler(storeUc),
		admindelivery.NewAdminHandler(adminUc),
		notifdelivery.NewNotificationHandler(notificationRepo),
	)

	return h
}

// Start blocks serving HTTP on addr.
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}

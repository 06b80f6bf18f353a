package api

import (
	"net/http"
	"time"

	admindelivery "loyalty-backend/internal/admin/delivery"
	authdelivery "loyalty-backend/internal/auth/delivery"
	authusecase "loyalty-backend/internal/auth/usecase"
	ledgerdelivery "loyalty-backend/internal/ledger/delivery"
	notifdelivery "loyalty-backend/internal/notification/delivery"
	rewarddelivery "loyalty-backend/internal/reward/delivery"
	storedelivery "loyalty-backend/internal/store/delivery"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	r *gin.Engine,
	authUsecase authusecase.AuthUsecase,
	authHandler *authdelivery.AuthHandler,
	ledgerHandler *ledgerdelivery.LedgerHandler,
	rewardHandler *rewarddelivery.RewardHandler,
	storeHandler *storedelivery.StoreHandler,
	adminHandler *admindelivery.AdminHandler,
	notificationHandler *notifdelivery.NotificationHandler,
) {
	// Health check and metrics (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := authdelivery.AuthMiddleware(authUsecase)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/telegram", authHandler.TelegramLogin)
			auth.POST("/update-profile", authHandler.UpdateProfile)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/profile", authHandler.Me)
			users.GET("/balance", authHandler.Balance)
			users.GET("/transactions", ledgerHandler.History)
			users.GET("/statistics", ledgerHandler.Statistics)
			users.GET("/notifications", notificationHandler.List)
			users.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		// Point-earning routes (protected; staff checks live in the usecase)
		transactions := api.Group("/transactions")
		transactions.Use(authRequired)
		{
			transactions.POST("/purchase", ledgerHandler.EarnPurchase)
			transactions.POST("/device-return", ledgerHandler.EarnDeviceReturn)
		}

		// Reward routes
		rewards := api.Group("/rewards")
		{
			rewards.GET("", rewardHandler.Catalog)
			rewards.GET("/redemptions/my", authRequired, rewardHandler.MyRedemptions)
			rewards.POST("/redemptions/:qr_code/confirm", authRequired, rewardHandler.Confirm)
			rewards.GET("/:id", rewardHandler.Get)
			rewards.POST("/:id/redeem", authRequired, rewardHandler.Redeem)
		}

		// Store routes
		stores := api.Group("/stores")
		{
			stores.GET("", storeHandler.List)
			stores.GET("/:id", storeHandler.Get)
			stores.GET("/:id/statistics", authRequired, storeHandler.Statistics)
			stores.GET("/:id/transactions", authRequired, storeHandler.Transactions)
		}

		// Admin routes (protected; admin checks live in the usecase)
		admin := api.Group("/admin")
		admin.Use(authRequired)
		{
			admin.GET("/statistics/overview", adminHandler.Overview)
			admin.GET("/statistics/geography", adminHandler.Geography)
			admin.GET("/statistics/stores", adminHandler.StoreStats)
			admin.GET("/statistics/timeline", adminHandler.Timeline)
			admin.GET("/export/report", adminHandler.ExportReport)
			admin.POST("/rewards", adminHandler.CreateReward)
			admin.PUT("/rewards/:id", adminHandler.UpdateReward)
			admin.DELETE("/rewards/:id", adminHandler.DeactivateReward)
			admin.POST("/promotions", adminHandler.CreatePromotion)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}
}

package main

import (
	"log"

	api "loyalty-backend/cmd/api"
	adminRepo "loyalty-backend/internal/admin/repository"
	adminUsecase "loyalty-backend/internal/admin/usecase"
	authdomain "loyalty-backend/internal/auth/domain"
	authRepo "loyalty-backend/internal/auth/repository"
	authUsecase "loyalty-backend/internal/auth/usecase"
	"loyalty-backend/internal/bot"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerRepo "loyalty-backend/internal/ledger/repository"
	ledgerUsecase "loyalty-backend/internal/ledger/usecase"
	"loyalty-backend/internal/notification"
	notifdomain "loyalty-backend/internal/notification/domain"
	notifRepo "loyalty-backend/internal/notification/repository"
	rewarddomain "loyalty-backend/internal/reward/domain"
	rewardRepo "loyalty-backend/internal/reward/repository"
	rewardUsecase "loyalty-backend/internal/reward/usecase"
	storedomain "loyalty-backend/internal/store/domain"
	storeRepo "loyalty-backend/internal/store/repository"
	storeUsecase "loyalty-backend/internal/store/usecase"
	"loyalty-backend/pkg/config"
	"loyalty-backend/pkg/database"
	"loyalty-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&storedomain.Store{},
		&ledgerdomain.Transaction{},
		&ledgerdomain.Device{},
		&ledgerdomain.Promotion{},
		&rewarddomain.Reward{},
		&rewarddomain.Redemption{},
		&notifdomain.Notification{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	transactionRepository := ledgerRepo.NewTransactionRepository(db)
	promotionRepository := ledgerRepo.NewPromotionRepository(db)
	deviceRepository := ledgerRepo.NewDeviceRepository(db)
	rewardRepository := rewardRepo.NewRewardRepository(db)
	redemptionRepository := rewardRepo.NewRedemptionRepository(db)
	storeRepository := storeRepo.NewStoreRepository(db)
	notificationRepository := notifRepo.NewNotificationRepository(db)
	statsRepository := adminRepo.NewStatsRepository(db)

	// Initialize usecases
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)

	// Telegram bot is optional: without a token the API still serves, but
	// nothing is delivered over Telegram.
	var telegramBot *bot.Bot
	var sender notification.Sender
	if cfg.TelegramBotToken != "" {
		telegramBot, err = bot.New(cfg.TelegramBotToken, cfg.TelegramWebAppURL, authUc, userRepository, rewardRepository)
		if err != nil {
			log.Fatal("Failed to initialize telegram bot:", err)
		}
		sender = telegramBot
		go telegramBot.Run()
	} else {
		logg.Warn().Msg("TELEGRAM_BOT_TOKEN is not set, telegram delivery disabled")
	}

	dispatcher := notification.NewDispatcher(sender)
	defer dispatcher.Close()

	ledgerUc := ledgerUsecase.NewLedgerUsecase(
		db,
		userRepository,
		transactionRepository,
		promotionRepository,
		deviceRepository,
		notificationRepository,
		dispatcher,
		cfg,
	)
	rewardUc := rewardUsecase.NewRewardUsecase(
		db,
		rewardRepository,
		redemptionRepository,
		userRepository,
		notificationRepository,
		ledgerUc,
		dispatcher,
	)
	storeUc := storeUsecase.NewStoreUsecase(storeRepository)
	adminUc := adminUsecase.NewAdminUsecase(statsRepository, rewardRepository, promotionRepository, userRepository)

	// Initialize HTTP handler and routes
	handler := api.NewHandler(authUc, ledgerUc, rewardUc, storeUc, adminUc, notificationRepository)

	logg.Info().Str("port", cfg.Port).Msg("starting server")
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}

	if telegramBot != nil {
		telegramBot.Stop()
	}
}

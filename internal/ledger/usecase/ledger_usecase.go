package usecase

import (
	"fmt"
	"math"

	authdomain "loyalty-backend/internal/auth/domain"
	authrepo "loyalty-backend/internal/auth/repository"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerdto "loyalty-backend/internal/ledger/dto"
	"loyalty-backend/internal/ledger/repository"
	notifdomain "loyalty-backend/internal/notification/domain"
	notifrepo "loyalty-backend/internal/notification/repository"
	"loyalty-backend/pkg/config"
	"loyalty-backend/pkg/metrics"

	"gorm.io/gorm"
)

// Notifier is the fire-and-forget Telegram boundary. Implementations must
// never block the caller.
type Notifier interface {
	Enqueue(telegramID int64, text string)
}

// LedgerUsecase is the points ledger engine. Every balance change goes
// through Apply: the balance update and the transaction row commit together
// or not at all, so the balance always equals the sum of the user's entries.
type LedgerUsecase interface {
	// Apply runs inside the caller's transaction: it adjusts the user's
	// balance by entry.Points and appends the entry itself.
	Apply(tx *gorm.DB, entry *ledgerdomain.Transaction) error

	EarnPurchase(actor *authdomain.User, req *ledgerdto.PurchaseRequest) (*ledgerdto.EarnResult, error)
	EarnDeviceReturn(actor *authdomain.User, req *ledgerdto.DeviceReturnRequest) (*ledgerdto.DeviceReturnResult, error)

	History(userID string, limit, offset int) ([]ledgerdto.HistoryRow, int64, error)
	Statistics(userID string) (*ledgerdto.UserStatistics, error)
}

// ledgerUsecase implements LedgerUsecase
type ledgerUsecase struct {
	db         *gorm.DB
	userRepo   authrepo.UserRepository
	txnRepo    repository.TransactionRepository
	promoRepo  repository.PromotionRepository
	deviceRepo repository.DeviceRepository
	notifRepo  notifrepo.NotificationRepository
	notifier   Notifier
	config     *config.Config
}

// NewLedgerUsecase creates a new instance of ledgerUsecase
func NewLedgerUsecase(
	db *gorm.DB,
	userRepo authrepo.UserRepository,
	txnRepo repository.TransactionRepository,
	promoRepo repository.PromotionRepository,
	deviceRepo repository.DeviceRepository,
	notifRepo notifrepo.NotificationRepository,
	notifier Notifier,
	cfg *config.Config,
) LedgerUsecase {
	return &ledgerUsecase{
		db:         db,
		userRepo:   userRepo,
		txnRepo:    txnRepo,
		promoRepo:  promoRepo,
		deviceRepo: deviceRepo,
		notifRepo:  notifRepo,
		notifier:   notifier,
		config:     cfg,
	}
}

// PurchasePoints converts a purchase amount in minor currency units into
// points: the base is truncated first, the multiplier applied after, and the
// product truncated again. The order matters for the earned amount and is
// kept exactly as the business defined it.
func PurchasePoints(amountMinor int64, rate int, multiplier float64) int {
	base := int(amountMinor/100) * rate
	return int(math.Floor(float64(base) * multiplier))
}

func (u *ledgerUsecase) Apply(tx *gorm.DB, entry *ledgerdomain.Transaction) error {
	if err := u.userRepo.AddPoints(tx, entry.UserID, entry.Points); err != nil {
		return err
	}
	return u.txnRepo.CreateTx(tx, entry)
}

func (u *ledgerUsecase) EarnPurchase(actor *authdomain.User, req *ledgerdto.PurchaseRequest) (*ledgerdto.EarnResult, error) {
	if !actor.Role.IsStaff() {
		return nil, authdomain.ErrForbidden
	}

	var (
		result ledgerdto.EarnResult
		target *authdomain.User
	)

	err := u.db.Transaction(func(tx *gorm.DB) error {
		// The row lock serializes concurrent earns and spends against the
		// same balance for the whole check-and-act sequence.
		user, err := u.userRepo.LockByTelegramID(tx, req.UserTelegramID)
		if err != nil {
			return err
		}
		if user == nil {
			return ledgerdomain.ErrUserNotFound
		}
		target = user

		multiplier, err := u.promoRepo.ActiveMultiplier(tx, actor.StoreID)
		if err != nil {
			return err
		}

		points := PurchasePoints(req.Amount, u.config.PointsPerPurchase, multiplier)

		entry := &ledgerdomain.Transaction{
			UserID:        user.ID,
			StoreID:       actor.StoreID,
			CashierID:     &actor.ID,
			Type:          ledgerdomain.KindPurchase,
			Points:        points,
			Description:   fmt.Sprintf("Покупка на сумму %.2f руб.", float64(req.Amount)/100),
			ReceiptNumber: req.ReceiptNumber,
		}
		if err := u.Apply(tx, entry); err != nil {
			return err
		}

		if err := u.notifRepo.CreateTx(tx, &notifdomain.Notification{
			UserID:  user.ID,
			Title:   "Баллы начислены! 🎉",
			Message: fmt.Sprintf("Вам начислено %d баллов за покупку", points),
			Type:    notifdomain.TypePointsEarned,
		}); err != nil {
			return err
		}

		result = ledgerdto.EarnResult{
			Transaction:  entry,
			PointsEarned: points,
			Multiplier:   multiplier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PointsIssuedTotal.WithLabelValues(string(ledgerdomain.KindPurchase)).Add(float64(result.PointsEarned))

	text := fmt.Sprintf("🎉 Баллы начислены!\n\n💰 +%d баллов за покупку", result.PointsEarned)
	if result.Multiplier > 1 {
		text += fmt.Sprintf("\n🔥 Акция х%g!", result.Multiplier)
	}
	text += "\n\n📱 Откройте приложение чтобы увидеть баланс"
	u.notifier.Enqueue(target.TelegramID, text)

	return &result, nil
}

func (u *ledgerUsecase) EarnDeviceReturn(actor *authdomain.User, req *ledgerdto.DeviceReturnRequest) (*ledgerdto.DeviceReturnResult, error) {
	if !actor.Role.IsStaff() {
		return nil, authdomain.ErrForbidden
	}

	points := u.config.PointsPerDevice

	var (
		result ledgerdto.DeviceReturnResult
		target *authdomain.User
	)

	err := u.db.Transaction(func(tx *gorm.DB) error {
		user, err := u.userRepo.LockByTelegramID(tx, req.UserTelegramID)
		if err != nil {
			return err
		}
		if user == nil {
			return ledgerdomain.ErrUserNotFound
		}
		target = user

		device := &ledgerdomain.Device{
			UserID:       user.ID,
			StoreID:      actor.StoreID,
			DeviceType:   req.DeviceType,
			Brand:        req.Brand,
			PointsEarned: points,
			PhotoURL:     req.PhotoURL,
		}
		if err := u.deviceRepo.CreateTx(tx, device); err != nil {
			return err
		}

		deviceType := req.DeviceType
		if deviceType == "" {
			deviceType = "вейп"
		}
		entry := &ledgerdomain.Transaction{
			UserID:      user.ID,
			StoreID:     actor.StoreID,
			CashierID:   &actor.ID,
			Type:        ledgerdomain.KindDeviceReturn,
			Points:      points,
			Description: fmt.Sprintf("Сдача устройства: %s %s", deviceType, req.Brand),
		}
		if err := u.Apply(tx, entry); err != nil {
			return err
		}

		if err := u.notifRepo.CreateTx(tx, &notifdomain.Notification{
			UserID:  user.ID,
			Title:   "Баллы за утилизацию! ♻️",
			Message: fmt.Sprintf("Вам начислено %d баллов за сдачу устройства", points),
			Type:    notifdomain.TypePointsEarned,
		}); err != nil {
			return err
		}

		result = ledgerdto.DeviceReturnResult{
			Device:       device,
			PointsEarned: points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PointsIssuedTotal.WithLabelValues(string(ledgerdomain.KindDeviceReturn)).Add(float64(points))

	u.notifier.Enqueue(target.TelegramID, fmt.Sprintf(
		"♻️ Спасибо за заботу об экологии!\n\n💰 +%d баллов за сдачу устройства\n\n📱 Откройте приложение чтобы увидеть баланс",
		points,
	))

	return &result, nil
}

func (u *ledgerUsecase) History(userID string, limit, offset int) ([]ledgerdto.HistoryRow, int64, error) {
	return u.txnRepo.HistoryByUser(userID, limit, offset)
}

func (u *ledgerUsecase) Statistics(userID string) (*ledgerdto.UserStatistics, error) {
	return u.txnRepo.UserStatistics(userID)
}

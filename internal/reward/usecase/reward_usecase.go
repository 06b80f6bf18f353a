package usecase

import (
	"fmt"
	"time"

	authdomain "loyalty-backend/internal/auth/domain"
	authrepo "loyalty-backend/internal/auth/repository"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerusecase "loyalty-backend/internal/ledger/usecase"
	notifdomain "loyalty-backend/internal/notification/domain"
	notifrepo "loyalty-backend/internal/notification/repository"
	rewarddomain "loyalty-backend/internal/reward/domain"
	rewarddto "loyalty-backend/internal/reward/dto"
	"loyalty-backend/internal/reward/repository"
	"loyalty-backend/pkg/metrics"
	"loyalty-backend/pkg/qr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardUsecase is the redemption engine: it exchanges points for reward
// units against the ledger and drives the pending -> completed hand-off.
type RewardUsecase interface {
	Catalog(category string, limit int) ([]rewarddomain.Reward, error)
	Get(id string) (*rewarddomain.Reward, error)
	Redeem(user *authdomain.User, rewardID string) (*rewarddto.RedemptionResult, error)
	Confirm(actor *authdomain.User, qrCode string) error
	MyRedemptions(userID string) ([]rewarddto.RedemptionRow, error)
}

// rewardUsecase implements RewardUsecase
type rewardUsecase struct {
	db             *gorm.DB
	rewardRepo     repository.RewardRepository
	redemptionRepo repository.RedemptionRepository
	userRepo       authrepo.UserRepository
	notifRepo      notifrepo.NotificationRepository
	ledger         ledgerusecase.LedgerUsecase
	notifier       ledgerusecase.Notifier
}

// NewRewardUsecase creates a new instance of rewardUsecase
func NewRewardUsecase(
	db *gorm.DB,
	rewardRepo repository.RewardRepository,
	redemptionRepo repository.RedemptionRepository,
	userRepo authrepo.UserRepository,
	notifRepo notifrepo.NotificationRepository,
	ledger ledgerusecase.LedgerUsecase,
	notifier ledgerusecase.Notifier,
) RewardUsecase {
	return &rewardUsecase{
		db:             db,
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		userRepo:       userRepo,
		notifRepo:      notifRepo,
		ledger:         ledger,
		notifier:       notifier,
	}
}

func (u *rewardUsecase) Catalog(category string, limit int) ([]rewarddomain.Reward, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return u.rewardRepo.ListActive(category, limit)
}

func (u *rewardUsecase) Get(id string) (*rewarddomain.Reward, error) {
	reward, err := u.rewardRepo.FindActiveByID(id)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, rewarddomain.ErrRewardNotFound
	}
	return reward, nil
}

// Redeem exchanges the reward's point cost for a pending redemption. The
// reward and user rows stay locked for the whole check-and-act sequence, so
// two concurrent redemptions can never both pass a stale stock or balance
// check. Everything commits as one unit; any failure rolls back the balance
// deduction and the stock decrement along with the redemption row.
func (u *rewardUsecase) Redeem(user *authdomain.User, rewardID string) (*rewarddto.RedemptionResult, error) {
	var (
		redemption rewarddomain.Redemption
		reward     *rewarddomain.Reward
	)

	err := u.db.Transaction(func(tx *gorm.DB) error {
		var err error
		reward, err = u.rewardRepo.LockActiveByID(tx, rewardID)
		if err != nil {
			return err
		}
		if reward == nil {
			return rewarddomain.ErrRewardNotFound
		}

		if reward.StockQuantity != nil && *reward.StockQuantity <= 0 {
			return rewarddomain.ErrOutOfStock
		}

		locked, err := u.userRepo.LockByID(tx, user.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return rewarddomain.ErrRewardNotFound
		}

		if locked.Points < reward.PointsCost {
			return &rewarddomain.InsufficientBalanceError{
				Required:  reward.PointsCost,
				Available: locked.Points,
			}
		}

		redemption = rewarddomain.Redemption{
			UserID:      locked.ID,
			RewardID:    reward.ID,
			QRCode:      uuid.New().String(),
			PointsSpent: reward.PointsCost,
			Status:      rewarddomain.StatusPending,
		}
		if err := u.redemptionRepo.CreateTx(tx, &redemption); err != nil {
			return err
		}

		entry := &ledgerdomain.Transaction{
			UserID:      locked.ID,
			Type:        ledgerdomain.KindRewardExchange,
			Points:      -reward.PointsCost,
			Description: fmt.Sprintf("Обмен на: %s", reward.Title),
		}
		if err := u.ledger.Apply(tx, entry); err != nil {
			return err
		}

		if reward.StockQuantity != nil {
			if err := u.rewardRepo.DecrementStock(tx, reward.ID); err != nil {
				return err
			}
		}

		return u.notifRepo.CreateTx(tx, &notifdomain.Notification{
			UserID:  locked.ID,
			Title:   "Награда получена! 🎁",
			Message: fmt.Sprintf("Вы обменяли %d баллов на \"%s\"", reward.PointsCost, reward.Title),
			Type:    notifdomain.TypeRewardAvailable,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.RedemptionsTotal.WithLabelValues("created").Inc()
	metrics.PointsSpentTotal.Add(float64(reward.PointsCost))

	u.notifier.Enqueue(user.TelegramID, fmt.Sprintf(
		"🎁 Награда получена!\n\nВы обменяли %d баллов на:\n\"%s\"\n\nПокажите QR-код кассиру в магазине для получения награды.\n\n📱 QR-код доступен в приложении",
		reward.PointsCost, reward.Title,
	))

	image, err := qr.DataURL(redemption.QRCode)
	if err != nil {
		// The redemption is committed; the app can re-render the code from
		// the token on the next fetch.
		image = ""
	}

	return &rewarddto.RedemptionResult{
		Redemption:  &redemption,
		RewardTitle: reward.Title,
		QRCodeImage: image,
	}, nil
}

// Confirm completes a pending redemption by token. Every miss reports the
// same ErrRedemptionNotFound: a wrong token, a completed token and a token
// that never existed are indistinguishable to the caller.
func (u *rewardUsecase) Confirm(actor *authdomain.User, qrCode string) error {
	if !actor.Role.IsStaff() {
		return authdomain.ErrForbidden
	}

	var userID string

	err := u.db.Transaction(func(tx *gorm.DB) error {
		redemption, err := u.redemptionRepo.LockPendingByQRCode(tx, qrCode)
		if err != nil {
			return err
		}
		if redemption == nil {
			return rewarddomain.ErrRedemptionNotFound
		}
		userID = redemption.UserID

		if err := u.redemptionRepo.CompleteTx(tx, redemption.ID, actor.StoreID, time.Now()); err != nil {
			return err
		}

		return u.notifRepo.CreateTx(tx, &notifdomain.Notification{
			UserID:  redemption.UserID,
			Title:   "Награда выдана! ✅",
			Message: "Ваша награда успешно получена",
			Type:    notifdomain.TypeRewardAvailable,
		})
	})
	if err != nil {
		return err
	}

	metrics.RedemptionsTotal.WithLabelValues("confirmed").Inc()

	if owner, err := u.userRepo.FindByID(userID); err == nil && owner != nil {
		u.notifier.Enqueue(owner.TelegramID,
			"✅ Награда выдана!\n\nВаша награда успешно получена. Спасибо за участие в программе лояльности!")
	}

	return nil
}

func (u *rewardUsecase) MyRedemptions(userID string) ([]rewarddto.RedemptionRow, error) {
	rows, err := u.redemptionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	// Only pending redemptions still need a scannable code.
	for i := range rows {
		if rows[i].Status == rewarddomain.StatusPending {
			if image, err := qr.DataURL(rows[i].QRCode); err == nil {
				rows[i].QRCodeImage = image
			}
		}
	}
	return rows, nil
}

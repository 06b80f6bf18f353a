package usecase

import (
	"testing"

	authdomain "loyalty-backend/internal/auth/domain"
	authrepo "loyalty-backend/internal/auth/repository"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerdto "loyalty-backend/internal/ledger/dto"
	"loyalty-backend/internal/ledger/repository"
	notifrepo "loyalty-backend/internal/notification/repository"
	"loyalty-backend/pkg/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

type fakeNotifier struct {
	telegramIDs []int64
	texts       []string
}

func (f *fakeNotifier) Enqueue(telegramID int64, text string) {
	f.telegramIDs = append(f.telegramIDs, telegramID)
	f.texts = append(f.texts, text)
}

func newLedgerUsecaseForTest(db *gorm.DB, notifier Notifier) LedgerUsecase {
	cfg := &config.Config{PointsPerPurchase: 10, PointsPerDevice: 50}
	return NewLedgerUsecase(
		db,
		authrepo.NewUserRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewDeviceRepository(db),
		notifrepo.NewNotificationRepository(db),
		notifier,
		cfg,
	)
}

func cashier(storeID string) *authdomain.User {
	return &authdomain.User{
		ID:      "cashier-1",
		Role:    authdomain.RoleCashier,
		StoreID: &storeID,
	}
}

func TestPurchasePoints(t *testing.T) {
	tests := []struct {
		name        string
		amountMinor int64
		rate        int
		multiplier  float64
		want        int
	}{
		{"whole rubles", 150000, 10, 1.0, 15000},
		{"kopecks truncated before rate", 150050, 10, 1.0, 15000},
		{"below one ruble earns nothing", 99, 10, 1.0, 0},
		{"promotion multiplier", 200, 10, 1.5, 30},
		{"product truncated after multiplier", 100, 10, 1.25, 12},
		{"zero amount", 0, 10, 2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PurchasePoints(tt.amountMinor, tt.rate, tt.multiplier))
		})
	}
}

func TestEarnPurchase(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	uc := newLedgerUsecaseForTest(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE telegram_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "telegram_id", "role", "points"}).
			AddRow("user-1", int64(42), "client", 100))
	mock.ExpectQuery(`SELECT \* FROM "promotions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "multiplier"}).
			AddRow("promo-1", 2.0))
	mock.ExpectExec(`UPDATE "users" SET "points"=points \+ \$1`).
		WithArgs(30000, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := uc.EarnPurchase(cashier("store-1"), &ledgerdto.PurchaseRequest{
		UserTelegramID: 42,
		ReceiptNumber:  "A-100",
		Amount:         150050,
	})
	require.NoError(t, err)

	assert.Equal(t, 30000, result.PointsEarned)
	assert.Equal(t, 2.0, result.Multiplier)
	assert.Equal(t, ledgerdomain.KindPurchase, result.Transaction.Type)
	assert.Equal(t, "user-1", result.Transaction.UserID)
	assert.Equal(t, "A-100", result.Transaction.ReceiptNumber)
	require.NotNil(t, result.Transaction.CashierID)
	assert.Equal(t, "cashier-1", *result.Transaction.CashierID)

	require.Len(t, notifier.texts, 1)
	assert.Equal(t, int64(42), notifier.telegramIDs[0])
	assert.Contains(t, notifier.texts[0], "+30000 баллов")
	assert.Contains(t, notifier.texts[0], "Акция х2!")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnPurchaseNoPromotion(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	uc := newLedgerUsecaseForTest(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE telegram_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "telegram_id", "role", "points"}).
			AddRow("user-1", int64(42), "client", 0))
	mock.ExpectQuery(`SELECT \* FROM "promotions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "multiplier"}))
	mock.ExpectExec(`UPDATE "users" SET "points"=points \+ \$1`).
		WithArgs(15000, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := uc.EarnPurchase(cashier("store-1"), &ledgerdto.PurchaseRequest{
		UserTelegramID: 42,
		Amount:         150000,
	})
	require.NoError(t, err)

	assert.Equal(t, 15000, result.PointsEarned)
	assert.Equal(t, 1.0, result.Multiplier)

	require.Len(t, notifier.texts, 1)
	assert.NotContains(t, notifier.texts[0], "Акция")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnPurchaseForbiddenForClients(t *testing.T) {
	db, _ := newMockDB(t)
	notifier := &fakeNotifier{}
	uc := newLedgerUsecaseForTest(db, notifier)

	actor := &authdomain.User{ID: "user-1", Role: authdomain.RoleClient}
	_, err := uc.EarnPurchase(actor, &ledgerdto.PurchaseRequest{UserTelegramID: 42, Amount: 100})

	assert.ErrorIs(t, err, authdomain.ErrForbidden)
	assert.Empty(t, notifier.texts)
}

func TestEarnPurchaseUnknownUserRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	uc := newLedgerUsecaseForTest(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE telegram_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := uc.EarnPurchase(cashier("store-1"), &ledgerdto.PurchaseRequest{
		UserTelegramID: 999,
		Amount:         150000,
	})

	assert.ErrorIs(t, err, ledgerdomain.ErrUserNotFound)
	assert.Empty(t, notifier.texts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnDeviceReturn(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &fakeNotifier{}
	uc := newLedgerUsecaseForTest(db, notifier)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE telegram_id = .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "telegram_id", "role", "points"}).
			AddRow("user-1", int64(42), "client", 0))
	mock.ExpectExec(`INSERT INTO "devices"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "points"=points \+ \$1`).
		WithArgs(50, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "transactions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "notifications"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := uc.EarnDeviceReturn(cashier("store-1"), &ledgerdto.DeviceReturnRequest{
		UserTelegramID: 42,
		Brand:          "HQD",
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.PointsEarned)
	assert.Equal(t, "user-1", result.Device.UserID)
	assert.Equal(t, "HQD", result.Device.Brand)

	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "+50 баллов")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnDeviceReturnForbiddenForClients(t *testing.T) {
	db, _ := newMockDB(t)
	uc := newLedgerUsecaseForTest(db, &fakeNotifier{})

	actor := &authdomain.User{ID: "user-1", Role: authdomain.RoleClient}
	_, err := uc.EarnDeviceReturn(actor, &ledgerdto.DeviceReturnRequest{UserTelegramID: 42})

	assert.ErrorIs(t, err, authdomain.ErrForbidden)
}

package usecase

import (
	"testing"
	"time"

	authdomain "loyalty-backend/internal/auth/domain"
	authdto "loyalty-backend/internal/auth/dto"
	"loyalty-backend/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepository keeps users in memory; Lock* behave like plain finds
// since there is no concurrency in these tests.
type fakeUserRepository struct {
	byID map[string]*authdomain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byID: make(map[string]*authdomain.User)}
}

func (f *fakeUserRepository) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) FindByID(id string) (*authdomain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByTelegramID(telegramID int64) (*authdomain.User, error) {
	for _, user := range f.byID {
		if user.TelegramID == telegramID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) Update(user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) UpdateContacts(telegramID int64, phone, email string) (*authdomain.User, error) {
	user, err := f.FindByTelegramID(telegramID)
	if err != nil || user == nil {
		return nil, err
	}
	if phone != "" {
		user.Phone = phone
	}
	if email != "" {
		user.Email = email
	}
	return user, f.Update(user)
}

func (f *fakeUserRepository) List(role string, limit, offset int) ([]authdomain.User, error) {
	var users []authdomain.User
	for _, user := range f.byID {
		if role == "" || string(user.Role) == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserRepository) LockByID(tx *gorm.DB, id string) (*authdomain.User, error) {
	return f.FindByID(id)
}

func (f *fakeUserRepository) LockByTelegramID(tx *gorm.DB, telegramID int64) (*authdomain.User, error) {
	return f.FindByTelegramID(telegramID)
}

func (f *fakeUserRepository) AddPoints(tx *gorm.DB, userID string, delta int) error {
	if user, ok := f.byID[userID]; ok {
		user.Points += delta
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func TestTelegramLoginProvisionsNewUser(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.TelegramLogin(&authdto.TelegramLoginRequest{
		TelegramID: 42,
		FirstName:  "Иван",
		Username:   "ivan",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, authdomain.RoleClient, resp.User.Role)
	assert.Equal(t, 0, resp.User.Points)
	assert.Equal(t, int64(42), resp.User.TelegramID)

	stored, err := repo.FindByTelegramID(42)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Иван", stored.FirstName)
}

func TestTelegramLoginRefreshesExistingUser(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewAuthUsecase(repo, testConfig())

	existing := &authdomain.User{
		TelegramID: 42,
		FirstName:  "Иван",
		Phone:      "+79990000000",
		Role:       authdomain.RoleCashier,
		Points:     300,
	}
	require.NoError(t, repo.Create(existing))

	resp, err := uc.TelegramLogin(&authdto.TelegramLoginRequest{
		TelegramID: 42,
		FirstName:  "Иван",
		LastName:   "Петров",
	})
	require.NoError(t, err)

	// Role, balance and previously saved contacts survive a re-login.
	assert.Equal(t, authdomain.RoleCashier, resp.User.Role)
	assert.Equal(t, 300, resp.User.Points)
	assert.Equal(t, "+79990000000", resp.User.Phone)
	assert.Equal(t, "Петров", resp.User.LastName)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.TelegramLogin(&authdto.TelegramLoginRequest{TelegramID: 42, FirstName: "Иван"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestValidateTokenReloadsUserRow(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewAuthUsecase(repo, testConfig())

	resp, err := uc.TelegramLogin(&authdto.TelegramLoginRequest{TelegramID: 42, FirstName: "Иван"})
	require.NoError(t, err)

	// Promote after the token was issued; the next request must already see
	// the new role.
	promoted := repo.byID[resp.User.ID]
	promoted.Role = authdomain.RoleAdmin

	user, err := uc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleAdmin, user.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepository(), testConfig())

	_, err := uc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := newFakeUserRepository()
	issuer := NewAuthUsecase(repo, &config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	verifier := NewAuthUsecase(repo, testConfig())

	resp, err := issuer.TelegramLogin(&authdto.TelegramLoginRequest{TelegramID: 42, FirstName: "Иван"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepository(), testConfig())

	_, err := uc.UpdateProfile(&authdto.UpdateProfileRequest{TelegramID: 999, Phone: "+79990000000"})
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	repo := newFakeUserRepository()
	uc := NewAuthUsecase(repo, testConfig())

	first, err := uc.ResolveOrCreate(42, "Иван", "", "ivan")
	require.NoError(t, err)

	second, err := uc.ResolveOrCreate(42, "Иван", "", "ivan")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byID, 1)
}

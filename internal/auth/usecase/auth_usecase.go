package usecase

import (
	"errors"
	"time"

	authdomain "loyalty-backend/internal/auth/domain"
	authdto "loyalty-backend/internal/auth/dto"
	"loyalty-backend/internal/auth/repository"
	"loyalty-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase maps a Telegram identity to an internal user record, issues
// bearer tokens and validates them on every request.
type AuthUsecase interface {
	TelegramLogin(req *authdto.TelegramLoginRequest) (*authdto.TokenResponse, error)
	UpdateProfile(req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	ValidateToken(tokenString string) (*authdomain.User, error)
	ResolveOrCreate(telegramID int64, firstName, lastName, username string) (*authdomain.User, error)
}

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

// TelegramLogin provisions the user on first sighting (role client, zero
// balance) and refreshes profile fields on later logins, then issues a JWT.
func (u *authUsecase) TelegramLogin(req *authdto.TelegramLoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByTelegramID(req.TelegramID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &authdomain.User{
			TelegramID: req.TelegramID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Username:   req.Username,
			Phone:      req.Phone,
			Email:      req.Email,
			Role:       authdomain.RoleClient,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Username = req.Username
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	token, err := u.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		Token: token,
		User:  user,
	}, nil
}

func (u *authUsecase) UpdateProfile(req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.userRepo.UpdateContacts(req.TelegramID, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

// ResolveOrCreate is the bot-facing variant of first-seen provisioning: no
// token is issued, the bot only needs the user row to exist.
func (u *authUsecase) ResolveOrCreate(telegramID int64, firstName, lastName, username string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &authdomain.User{
		TelegramID: telegramID,
		FirstName:  firstName,
		LastName:   lastName,
		Username:   username,
		Role:       authdomain.RoleClient,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) generateToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(u.config.JWTExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

// ValidateToken parses the bearer token and re-loads the user row, so role
// or store reassignments take effect on the next request, not at token
// expiry.
func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	return user, nil
}

package dto

import authdomain "loyalty-backend/internal/auth/domain"

// TelegramLoginRequest carries the identity fields the mini app reads from
// Telegram.WebApp.initDataUnsafe.
type TelegramLoginRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type UpdateProfileRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type TokenResponse struct {
	Token string           `json:"token"`
	User  *authdomain.User `json:"user"`
}

package delivery

import (
	"errors"
	"net/http"

	authdomain "loyalty-backend/internal/auth/domain"
	authdto "loyalty-backend/internal/auth/dto"
	"loyalty-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and profile HTTP requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// TelegramLogin signs the user in (or up) from Telegram identity fields.
// POST /api/auth/telegram
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	var req authdto.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return
	}

	resp, err := h.authUsecase.TelegramLogin(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authorization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// UpdateProfile refreshes the user's contact fields.
// POST /api/auth/update-profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return
	}

	user, err := h.authUsecase.UpdateProfile(&req)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Me returns the authenticated user's profile.
// GET /api/users/profile
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Balance returns just the points balance.
// GET /api/users/balance
func (h *AuthHandler) Balance(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "points": user.Points})
}

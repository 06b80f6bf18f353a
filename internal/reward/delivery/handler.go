package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "loyalty-backend/internal/auth/delivery"
	authdomain "loyalty-backend/internal/auth/domain"
	rewarddomain "loyalty-backend/internal/reward/domain"
	"loyalty-backend/internal/reward/usecase"
	"loyalty-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RewardHandler handles reward catalog and redemption HTTP requests
type RewardHandler struct {
	rewardUsecase usecase.RewardUsecase
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardUsecase usecase.RewardUsecase) *RewardHandler {
	return &RewardHandler{
		rewardUsecase: rewardUsecase,
	}
}

// Catalog lists active rewards.
// GET /api/rewards?category=merch&limit=50
func (h *RewardHandler) Catalog(c *gin.Context) {
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rewards, err := h.rewardUsecase.Catalog(category, limit)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to load reward catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rewards": rewards})
}

// Get returns a single active reward.
// GET /api/rewards/:id
func (h *RewardHandler) Get(c *gin.Context) {
	reward, err := h.rewardUsecase.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, rewarddomain.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to load reward")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reward": reward})
}

// Redeem exchanges the user's points for the reward.
// POST /api/rewards/:id/redeem
func (h *RewardHandler) Redeem(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	result, err := h.rewardUsecase.Redeem(user, c.Param("id"))
	if err != nil {
		var insufficient *rewarddomain.InsufficientBalanceError
		switch {
		case errors.Is(err, rewarddomain.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
		case errors.Is(err, rewarddomain.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "reward out of stock"})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "insufficient balance",
				"required":  insufficient.Required,
				"available": insufficient.Available,
			})
		default:
			logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("redemption failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "redemption": result})
}

// MyRedemptions lists the authenticated user's redemptions.
// GET /api/rewards/redemptions/my
func (h *RewardHandler) MyRedemptions(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	rows, err := h.rewardUsecase.MyRedemptions(user.ID)
	if err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to load redemptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "redemptions": rows})
}

// Confirm completes a pending redemption by its QR token (staff only).
// POST /api/rewards/redemptions/:qr_code/confirm
func (h *RewardHandler) Confirm(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	err := h.rewardUsecase.Confirm(actor, c.Param("qr_code"))
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		case errors.Is(err, rewarddomain.ErrRedemptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "redemption not found or already completed"})
		default:
			logger.Get().Error().Err(err).Msg("redemption confirmation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reward handed out"})
}

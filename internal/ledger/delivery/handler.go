package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "loyalty-backend/internal/auth/delivery"
	authdomain "loyalty-backend/internal/auth/domain"
	ledgerdomain "loyalty-backend/internal/ledger/domain"
	ledgerdto "loyalty-backend/internal/ledger/dto"
	"loyalty-backend/internal/ledger/usecase"
	"loyalty-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LedgerHandler handles point-earning and ledger read HTTP requests
type LedgerHandler struct {
	ledgerUsecase usecase.LedgerUsecase
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerUsecase usecase.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{
		ledgerUsecase: ledgerUsecase,
	}
}

// EarnPurchase credits points for a purchase (staff only).
// POST /api/transactions/purchase
func (h *LedgerHandler) EarnPurchase(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var req ledgerdto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_telegram_id and amount are required"})
		return
	}

	result, err := h.ledgerUsecase.EarnPurchase(actor, &req)
	if err != nil {
		h.respondEarnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"transaction":   result.Transaction,
		"points_earned": result.PointsEarned,
	})
}

// EarnDeviceReturn credits points for a returned device (staff only).
// POST /api/transactions/device-return
func (h *LedgerHandler) EarnDeviceReturn(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var req ledgerdto.DeviceReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_telegram_id is required"})
		return
	}

	result, err := h.ledgerUsecase.EarnDeviceReturn(actor, &req)
	if err != nil {
		h.respondEarnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"device":        result.Device,
		"points_earned": result.PointsEarned,
	})
}

// History returns the authenticated user's transaction feed.
// GET /api/users/transactions?limit=50&offset=0
func (h *LedgerHandler) History(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := h.ledgerUsecase.History(user.ID, limit, offset)
	if err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to load transaction history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": rows,
		"total":        total,
	})
}

// Statistics returns per-user ledger aggregates.
// GET /api/users/statistics
func (h *LedgerHandler) Statistics(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	stats, err := h.ledgerUsecase.Statistics(user.ID)
	if err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to load user statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

func (h *LedgerHandler) respondEarnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	case errors.Is(err, ledgerdomain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		logger.Get().Error().Err(err).Msg("ledger operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

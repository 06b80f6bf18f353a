package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdelivery "loyalty-backend/internal/auth/delivery"
	authdomain "loyalty-backend/internal/auth/domain"
	storedomain "loyalty-backend/internal/store/domain"
	"loyalty-backend/internal/store/usecase"
	"loyalty-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// StoreHandler handles store catalog and dashboard HTTP requests
type StoreHandler struct {
	storeUsecase usecase.StoreUsecase
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeUsecase usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{
		storeUsecase: storeUsecase,
	}
}

// List returns active stores, optionally filtered by city.
// GET /api/stores?city=Москва
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.storeUsecase.List(c.Query("city"))
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to load stores")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stores": stores})
}

// Get returns one active store.
// GET /api/stores/:id
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.storeUsecase.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, storedomain.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to load store")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "store": store})
}

// Statistics returns the store dashboard (staff only, cashiers restricted
// to their own store).
// GET /api/stores/:id/statistics
func (h *StoreHandler) Statistics(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	stats, err := h.storeUsecase.Statistics(actor, c.Param("id"))
	if err != nil {
		if errors.Is(err, authdomain.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to load store statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

// Transactions returns the store's ledger feed.
// GET /api/stores/:id/transactions?type=purchase&limit=50&offset=0
func (h *StoreHandler) Transactions(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, total, err := h.storeUsecase.Transactions(actor, c.Param("id"), c.Query("type"), limit, offset)
	if err != nil {
		if errors.Is(err, authdomain.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to load store transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": rows,
		"total":        total,
	})
}

package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	admindto "loyalty-backend/internal/admin/dto"
	"loyalty-backend/internal/admin/usecase"
	authdelivery "loyalty-backend/internal/auth/delivery"
	authdomain "loyalty-backend/internal/auth/domain"
	rewarddomain "loyalty-backend/internal/reward/domain"
	"loyalty-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin dashboard and management HTTP requests
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// Overview returns network-wide headline figures.
// GET /api/admin/statistics/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	overview, recent, err := h.adminUsecase.Overview(actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"overview": overview,
		"recent":   recent,
	})
}

// Geography returns per-city aggregates.
// GET /api/admin/statistics/geography
func (h *AdminHandler) Geography(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	rows, err := h.adminUsecase.Geography(actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "geography": rows})
}

// StoreStats returns per-store aggregates.
// GET /api/admin/statistics/stores
func (h *AdminHandler) StoreStats(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	rows, err := h.adminUsecase.StoreStats(actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stores": rows})
}

// Timeline returns daily activity over the requested window.
// GET /api/admin/statistics/timeline?days=30
func (h *AdminHandler) Timeline(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	rows, err := h.adminUsecase.Timeline(actor, days)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "timeline": rows})
}

// ExportReport returns the joined transaction report for a date range.
// GET /api/admin/export/report?start_date=...&end_date=...
func (h *AdminHandler) ExportReport(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var start, end *time.Time
	if s := c.Query("start_date"); s != "" {
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			start = &parsed
		}
	}
	if e := c.Query("end_date"); e != "" {
		if parsed, err := time.Parse(time.RFC3339, e); err == nil {
			end = &parsed
		}
	}

	rows, err := h.adminUsecase.Report(actor, start, end)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"report":       rows,
		"generated_at": time.Now().Format(time.RFC3339),
	})
}

// CreateReward adds a catalog item.
// POST /api/admin/rewards
func (h *AdminHandler) CreateReward(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var req admindto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and points_cost are required"})
		return
	}

	reward, err := h.adminUsecase.CreateReward(actor, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reward": reward})
}

// UpdateReward partially updates a catalog item.
// PUT /api/admin/rewards/:id
func (h *AdminHandler) UpdateReward(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var req admindto.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reward, err := h.adminUsecase.UpdateReward(actor, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, rewarddomain.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reward": reward})
}

// DeactivateReward soft-deletes a catalog item.
// DELETE /api/admin/rewards/:id
func (h *AdminHandler) DeactivateReward(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	if err := h.adminUsecase.DeactivateReward(actor, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reward deactivated"})
}

// CreatePromotion adds a purchase-point promotion.
// POST /api/admin/promotions
func (h *AdminHandler) CreatePromotion(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	var req admindto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, multiplier, start_date and end_date are required"})
		return
	}

	promotion, err := h.adminUsecase.CreatePromotion(actor, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "promotion": promotion})
}

// ListUsers returns the user directory.
// GET /api/admin/users?role=cashier&limit=100&offset=0
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor := authdelivery.CurrentUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.adminUsecase.ListUsers(actor, c.Query("role"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h *AdminHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, authdomain.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}
	logger.Get().Error().Err(err).Msg("admin operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

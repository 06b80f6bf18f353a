package delivery

import (
	"net/http"
	"strconv"

	authdelivery "loyalty-backend/internal/auth/delivery"
	"loyalty-backend/internal/notification/repository"
	"loyalty-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles the user-facing notification feed
type NotificationHandler struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		notifRepo: notifRepo,
	}
}

// List returns the user's notifications plus the unread count.
// GET /api/users/notifications?limit=20
func (h *NotificationHandler) List(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, err := h.notifRepo.ListByUser(user.ID, limit)
	if err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to load notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	unread, err := h.notifRepo.CountUnread(user.ID)
	if err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to count unread notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkRead flags one notification as read.
// PUT /api/users/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := authdelivery.CurrentUser(c)

	if err := h.notifRepo.MarkRead(user.ID, c.Param("id")); err != nil {
		logger.Get().Error().Err(err).Str("user_id", user.ID).Msg("failed to mark notification read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GET /api/notifications
func (h *NotificationHandler) GetMy(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	page, limit := utils.PageParams(c)

	notifications, total, err := h.service.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = make([]models.Notification, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(notifications, utils.NewPagination(page, limit, total)))
}

// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.MarkAsRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

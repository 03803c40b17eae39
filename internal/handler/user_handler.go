package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/admin/users (?role= filter)
func (h *UserHandler) List(c *gin.Context) {
	page, limit := utils.PageParams(c)

	users, total, err := h.users.ListByRole(c.Request.Context(), models.Role(c.Query("role")), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(users, utils.NewPagination(page, limit, total)))
}

// PATCH /api/admin/users/:id/ban
func (h *UserHandler) Ban(c *gin.Context) {
	h.setBanned(c, true, "user banned")
}

// PATCH /api/admin/users/:id/unban
func (h *UserHandler) Unban(c *gin.Context) {
	h.setBanned(c, false, "user unbanned")
}

func (h *UserHandler) setBanned(c *gin.Context, banned bool, msg string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.SetBanned(c.Request.Context(), id, banned); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// PATCH /api/admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.ChangeRole(c.Request.Context(), id, in.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the dashboard surfaces that do not warrant their own
// handler: team roster, platform settings and contact inbox.
type AdminHandler struct {
	team     *services.TeamService
	settings *services.SettingsService
	contacts *services.ContactService
}

func NewAdminHandler(team *services.TeamService, settings *services.SettingsService, contacts *services.ContactService) *AdminHandler {
	return &AdminHandler{team: team, settings: settings, contacts: contacts}
}

// GET /api/team (public)
func (h *AdminHandler) ListTeam(c *gin.Context) {
	members, err := h.team.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if members == nil {
		members = make([]models.TeamMember, 0)
	}
	c.JSON(http.StatusOK, members)
}

// POST /api/admin/team
func (h *AdminHandler) CreateTeamMember(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.team.Create(c.Request.Context(), &member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// PUT /api/admin/team/:id
func (h *AdminHandler) UpdateTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.TeamMember
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.team.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DELETE /api/admin/team/:id
func (h *AdminHandler) DeleteTeamMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.team.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team member deleted"})
}

// GET /api/admin/settings/smtp
func (h *AdminHandler) GetSMTP(c *gin.Context) {
	settings, err := h.settings.GetSMTP(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /api/admin/settings/smtp
func (h *AdminHandler) UpdateSMTP(c *gin.Context) {
	var in struct {
		Host        string `json:"host" binding:"required"`
		Port        int    `json:"port" binding:"required"`
		Username    string `json:"username"`
		Password    string `json:"password"`
		FromAddress string `json:"from_address" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.SMTPSettings{
		Host:        in.Host,
		Port:        in.Port,
		Username:    in.Username,
		Password:    in.Password,
		FromAddress: in.FromAddress,
	}
	if err := h.settings.UpdateSMTP(c.Request.Context(), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "smtp settings updated"})
}

// GET /api/admin/settings/commission
func (h *AdminHandler) GetCommission(c *gin.Context) {
	settings, err := h.settings.GetCommission(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /api/admin/settings/commission
func (h *AdminHandler) UpdateCommission(c *gin.Context) {
	var in struct {
		Percent *float64 `json:"percent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := models.CommissionSettings{Percent: *in.Percent}
	if err := h.settings.UpdateCommission(c.Request.Context(), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "commission updated"})
}

// POST /api/contact (public)
func (h *AdminHandler) SubmitContact(c *gin.Context) {
	var in struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if err := h.contacts.Submit(c.Request.Context(), &msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "message received"})
}

// GET /api/admin/contacts
func (h *AdminHandler) ListContacts(c *gin.Context) {
	page, limit := utils.PageParams(c)
	messages, total, err := h.contacts.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if messages == nil {
		messages = make([]models.ContactMessage, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(messages, utils.NewPagination(page, limit, total)))
}

// PATCH /api/admin/contacts/:id/read
func (h *AdminHandler) MarkContactRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.contacts.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type JobHandler struct {
	service services.JobService
}

func NewJobHandler(service services.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// GET /api/jobs (public, open postings only)
func (h *JobHandler) ListOpen(c *gin.Context) {
	page, limit := utils.PageParams(c)
	jobs, total, err := h.service.ListOpen(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if jobs == nil {
		jobs = make([]models.Job, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(jobs, utils.NewPagination(page, limit, total)))
}

// GET /api/jobs/:id (public)
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// POST /api/jobs/:id/apply (public)
func (h *JobHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Phone     string `json:"phone"`
		ResumeURL string `json:"resume_url"`
		CoverNote string `json:"cover_note"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := models.JobApplication{
		JobID:     jobID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		ResumeURL: in.ResumeURL,
		CoverNote: in.CoverNote,
	}
	if err := h.service.Apply(c.Request.Context(), &app); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// POST /api/admin/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), &job); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// PUT /api/admin/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.Job
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.service.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DELETE /api/admin/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

// PATCH /api/admin/jobs/:id/close
func (h *JobHandler) Close(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Close(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job closed"})
}

// GET /api/admin/jobs (includes closed, ?status= filter)
func (h *JobHandler) ListAll(c *gin.Context) {
	page, limit := utils.PageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	jobs, total, err := h.service.ListAll(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if jobs == nil {
		jobs = make([]models.Job, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(jobs, utils.NewPagination(page, limit, total)))
}

// GET /api/admin/jobs/:id/applications
func (h *JobHandler) Applications(c *gin.Context) {
	jobID, ok := pathID(c)
	if !ok {
		return
	}
	page, limit := utils.PageParams(c)

	apps, total, err := h.service.Applications(c.Request.Context(), jobID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if apps == nil {
		apps = make([]models.JobApplication, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(apps, utils.NewPagination(page, limit, total)))
}

// PATCH /api/admin/applications/:id/review
func (h *JobHandler) MarkReviewed(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.MarkApplicationReviewed(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application reviewed"})
}

package handler

import (
	"context"
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseHandler struct {
	service services.CourseService
}

func NewCourseHandler(service services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// GET /api/courses (public catalog)
func (h *CourseHandler) ListPublished(c *gin.Context) {
	page, limit := utils.PageParams(c)
	courses, total, err := h.service.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = make([]models.CourseSummary, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(courses, utils.NewPagination(page, limit, total)))
}

// GET /api/courses/:id (auth; lessons stay hidden without a valid order)
func (h *CourseHandler) GetForStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	course, hasAccess, err := h.service.GetForStudent(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"course": course, "has_access": hasAccess})
}

// POST /api/courses (instructor/admin)
func (h *CourseHandler) Create(c *gin.Context) {
	var in struct {
		Title       string                `json:"title" binding:"required"`
		Description string                `json:"description"`
		Price       float64               `json:"price"`
		Thumbnail   string                `json:"thumbnail"`
		Modules     []models.CourseModule `json:"modules"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	instructorID, ok := currentUserID(c)
	if !ok {
		return
	}

	course := models.Course{
		Title:        in.Title,
		Description:  in.Description,
		InstructorID: instructorID,
		Price:        in.Price,
		Thumbnail:    in.Thumbnail,
		Modules:      in.Modules,
	}
	if err := h.service.Create(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// PUT /api/courses/:id (owner instructor or admin)
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.Course
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.canManage(c, id) {
		return
	}
	course, err := h.service.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DELETE /api/courses/:id (owner instructor or admin)
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.canManage(c, id) {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// PATCH /api/courses/:id/publish (owner instructor or admin)
func (h *CourseHandler) Publish(c *gin.Context) {
	h.setStatus(c, h.service.Publish, "course published")
}

// PATCH /api/courses/:id/unpublish (owner instructor or admin)
func (h *CourseHandler) Unpublish(c *gin.Context) {
	h.setStatus(c, h.service.Unpublish, "course unpublished")
}

func (h *CourseHandler) setStatus(c *gin.Context, op func(ctx context.Context, id primitive.ObjectID) error, msg string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.canManage(c, id) {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// GET /api/admin/courses (admin, includes drafts)
func (h *CourseHandler) ListAll(c *gin.Context) {
	page, limit := utils.PageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if instructor := c.Query("instructor_id"); instructor != "" {
		instructorID, err := primitive.ObjectIDFromHex(instructor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instructor_id"})
			return
		}
		filter["instructor_id"] = instructorID
	}

	courses, total, err := h.service.ListAll(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = make([]models.CourseSummary, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(courses, utils.NewPagination(page, limit, total)))
}

// canManage allows admins and the owning instructor through.
func (h *CourseHandler) canManage(c *gin.Context, courseID primitive.ObjectID) bool {
	if c.GetString("role") == string(models.RoleAdmin) {
		return true
	}
	course, err := h.service.GetByID(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if course.InstructorID.Hex() != c.GetString("userId") {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return false
	}
	return true
}

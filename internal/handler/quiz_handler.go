package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizHandler struct {
	service services.QuizService
	orders  services.OrderService
}

func NewQuizHandler(service services.QuizService, orders services.OrderService) *QuizHandler {
	return &QuizHandler{service: service, orders: orders}
}

// POST /api/quizzes (instructor/admin)
func (h *QuizHandler) Create(c *gin.Context) {
	var in struct {
		CourseID     string            `json:"course_id" binding:"required"`
		Title        string            `json:"title" binding:"required"`
		Questions    []models.Question `json:"questions"`
		PassingScore int               `json:"passing_score"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, err := primitive.ObjectIDFromHex(in.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	quiz := models.Quiz{
		CourseID:     courseID,
		Title:        in.Title,
		Questions:    in.Questions,
		PassingScore: in.PassingScore,
	}
	if err := h.service.Create(c.Request.Context(), &quiz); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// PUT /api/quizzes/:id (instructor/admin)
func (h *QuizHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.Quiz
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.service.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// DELETE /api/quizzes/:id (instructor/admin)
func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quiz deleted"})
}

// GET /api/quizzes/:id (student, answers stripped, requires course access)
func (h *QuizHandler) GetForStudent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quiz, err := h.service.GetForStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.requireCourseAccess(c, userID, quiz.CourseID) {
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// GET /api/courses/:id/quizzes (instructor/admin)
func (h *QuizHandler) GetByCourse(c *gin.Context) {
	courseID, ok := pathID(c)
	if !ok {
		return
	}
	quizzes, err := h.service.GetByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	if quizzes == nil {
		quizzes = make([]models.Quiz, 0)
	}
	c.JSON(http.StatusOK, quizzes)
}

// POST /api/quizzes/:id/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in struct {
		Answers    []int  `json:"answers"`
		AttemptKey string `json:"attempt_key"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.service.GetForStudent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.requireCourseAccess(c, userID, quiz.CourseID) {
		return
	}

	attempt, err := h.service.Submit(c.Request.Context(), id, userID, in.Answers, in.AttemptKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// GET /api/quizzes/attempts/my
func (h *QuizHandler) GetMyAttempts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attempts, err := h.service.AttemptsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if attempts == nil {
		attempts = make([]models.QuizAttempt, 0)
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *QuizHandler) requireCourseAccess(c *gin.Context, userID, courseID primitive.ObjectID) bool {
	if c.GetString("role") != string(models.RoleStudent) {
		return true
	}
	hasAccess, err := h.orders.HasCourseAccess(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !hasAccess {
		c.JSON(http.StatusForbidden, gin.H{"error": "no active access to this course"})
		return false
	}
	return true
}

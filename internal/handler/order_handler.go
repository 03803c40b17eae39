package handler

import (
	"net/http"

	"elearning-app/internal/models"
	"elearning-app/internal/services"
	"elearning-app/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	service services.OrderService
}

func NewOrderHandler(service services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in struct {
		PlanType        models.PlanType `json:"plan_type" binding:"required"`
		CourseID        string          `json:"course_id"`
		Price           float64         `json:"price"`
		PaymentMethodID string          `json:"payment_method_id" binding:"required"`
		TransactionID   string          `json:"transaction_id" binding:"required"`
		SenderNumber    string          `json:"sender_number"`
		DeliveryAddress string          `json:"delivery_address"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.Order{
		UserID:          userID,
		PlanType:        in.PlanType,
		Price:           in.Price,
		PaymentMethodID: in.PaymentMethodID,
		TransactionID:   in.TransactionID,
		SenderNumber:    in.SenderNumber,
		DeliveryAddress: in.DeliveryAddress,
	}
	if in.CourseID != "" {
		courseID, err := primitive.ObjectIDFromHex(in.CourseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
			return
		}
		order.CourseID = &courseID
	}

	if err := h.service.Create(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PATCH /api/orders/:id/approve (admin)
func (h *OrderHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id/reject (admin)
func (h *OrderHandler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id/extend (admin)
func (h *OrderHandler) ExtendByMonths(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Months int `json:"months" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.ExtendByMonths(c.Request.Context(), id, in.Months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id/extend-days (admin)
func (h *OrderHandler) ExtendByDays(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.ExtendByDays(c.Request.Context(), id, in.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/my
func (h *OrderHandler) GetMy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orders, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = make([]models.Order, 0)
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id (owner or admin)
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.GetString("role") != string(models.RoleAdmin) && order.UserID.Hex() != c.GetString("userId") {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/orders (admin, paginated, ?status= &plan_type= filters)
func (h *OrderHandler) List(c *gin.Context) {
	page, limit := utils.PageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["payment_status"] = status
	}
	if plan := c.Query("plan_type"); plan != "" {
		filter["plan_type"] = plan
	}

	orders, total, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = make([]models.Order, 0)
	}
	c.JSON(http.StatusOK, utils.Paginated(orders, utils.NewPagination(page, limit, total)))
}

package handlers

import (
	"net/http"
	"strconv"

	"FoodOrder/models"
	"FoodOrder/services"

	"github.com/gin-gonic/gin"
)

const defaultHistoryLimit = 50

func RegisterAdminHandler(c *gin.Context, accounts *services.AccountService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := accounts.RegisterAdmin(c.Request.Context(), actorID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(session, "Admin registration successful."))
}

func GetAllOrdersHandler(c *gin.Context, orders *services.OrderService) {
	list, err := orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(list))
}

func UpdateOrderStatusHandler(c *gin.Context, orders *services.OrderService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		OrderStatus string `json:"orderStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := orders.UpdateStatus(c.Request.Context(), actorID, orderID, models.OrderStatus(req.OrderStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(*order))
}

func AdminDeleteOrderHandler(c *gin.Context, orders *services.OrderService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := orders.SoftDeleteOrder(c.Request.Context(), actorID, orderID, 0); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted.",
	})
}

// GetOrderHistoryHandler lists the audited changes of an order. The
// optional limit query parameter caps the result.
func GetOrderHistoryHandler(c *gin.Context, orders *services.OrderService) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit := int64(defaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid limit",
			})
			return
		}
		limit = parsed
	}

	entries, err := orders.History(c.Request.Context(), orderID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": orderID,
		"history": newAuditEntryResponses(entries),
	})
}

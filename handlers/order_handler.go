package handlers

import (
	"net/http"

	"FoodOrder/services"

	"github.com/gin-gonic/gin"
)

type orderRequest struct {
	RestaurantID uint `json:"restaurantId" binding:"required"`
	OrderItems   []struct {
		MenuItemID uint `json:"menuItemId"`
		Quantity   int  `json:"quantity"`
	} `json:"orderItems"`
}

// SendOrderHandler places an order priced from the current catalog. Any
// total sent by the client is ignored.
func SendOrderHandler(c *gin.Context, orders *services.OrderService) {
	customerID, ok := caller(c)
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := services.PlaceOrderInput{RestaurantID: req.RestaurantID}
	for _, item := range req.OrderItems {
		in.Items = append(in.Items, services.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	order, err := orders.PlaceOrder(c.Request.Context(), customerID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(*order))
}

func GetOrderListHandler(c *gin.Context, orders *services.OrderService) {
	customerID, ok := caller(c)
	if !ok {
		return
	}

	list, err := orders.GetUserOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(list))
}

func GetOrderDataHandler(c *gin.Context, orders *services.OrderService) {
	customerID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := orders.GetOrder(c.Request.Context(), orderID, ownerScope(c, customerID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(*order))
}

// SoftDeleteOrderHandler hides one of the caller's orders. Admins use the
// admin route and may hide any order.
func SoftDeleteOrderHandler(c *gin.Context, orders *services.OrderService) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := orders.SoftDeleteOrder(c.Request.Context(), userID, orderID, ownerScope(c, userID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted.",
	})
}

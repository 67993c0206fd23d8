package handlers

import (
	"net/http"

	"FoodOrder/services"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	UserID     uint `json:"userId"`
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity"`
}

type cartItemUpdateRequest struct {
	UserID      uint `json:"userId"`
	CartItemID  uint `json:"cartItemId" binding:"required"`
	NewQuantity int  `json:"newQuantity"`
}

func GetCartHandler(c *gin.Context, carts *services.CartService) {
	requested, ok := pathID(c, "userId")
	if !ok {
		return
	}
	userID, ok := resolveUser(c, requested)
	if !ok {
		return
	}

	cart, err := carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCartResponse(*cart))
}

// AddToCartHandler adds a menu item to the caller's cart. Adding an item
// that is already there raises its quantity.
func AddToCartHandler(c *gin.Context, carts *services.CartService) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	cart, err := carts.AddItem(c.Request.Context(), userID, req.MenuItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCartResponse(*cart))
}

func DeleteCartItemHandler(c *gin.Context, carts *services.CartService) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	cartItemID, ok := pathID(c, "cartItemId")
	if !ok {
		return
	}

	if err := carts.RemoveItem(c.Request.Context(), cartItemID, ownerScope(c, userID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed.",
	})
}

func ClearCartHandler(c *gin.Context, carts *services.CartService) {
	requested, ok := pathID(c, "userId")
	if !ok {
		return
	}
	userID, ok := resolveUser(c, requested)
	if !ok {
		return
	}

	if err := carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared.",
	})
}

// UpdateCartItemQuantityHandler applies a list of quantity changes to one
// cart. Either all of them are applied or none.
func UpdateCartItemQuantityHandler(c *gin.Context, carts *services.CartService) {
	var req []cartItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "no cart items to update",
		})
		return
	}

	userID, ok := resolveUser(c, req[0].UserID)
	if !ok {
		return
	}

	updates := make([]services.CartItemUpdate, 0, len(req))
	for _, item := range req {
		updates = append(updates, services.CartItemUpdate{
			CartItemID:  item.CartItemID,
			NewQuantity: item.NewQuantity,
		})
	}

	cart, err := carts.UpdateItems(c.Request.Context(), userID, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCartResponse(*cart))
}

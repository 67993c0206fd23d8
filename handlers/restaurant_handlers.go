package handlers

import (
	"net/http"
	"strconv"

	"FoodOrder/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type restaurantRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Address     string  `json:"address"`
	ImageURL    *string `json:"imageUrl"`
}

func (r restaurantRequest) input() services.RestaurantInput {
	return services.RestaurantInput{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Rating:      r.Rating,
		Address:     r.Address,
		ImageURL:    r.ImageURL,
	}
}

type menuItemRequest struct {
	RestaurantID uint            `json:"restaurantId"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     *string         `json:"imageUrl"`
}

func (r menuItemRequest) input() services.MenuItemInput {
	return services.MenuItemInput{
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		ImageURL:     r.ImageURL,
	}
}

// GetRestaurantListHandler lists active restaurants with their menus.
func GetRestaurantListHandler(c *gin.Context, catalog *services.CatalogService) {
	restaurants, err := catalog.ListRestaurants(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRestaurantResponses(restaurants))
}

// GetRestaurantDataHandler also answers for soft-deleted restaurants so
// old orders can still show where they came from.
func GetRestaurantDataHandler(c *gin.Context, catalog *services.CatalogService) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	restaurant, err := catalog.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRestaurantResponse(*restaurant))
}

func CreateRestaurantHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	restaurant, err := catalog.CreateRestaurant(c.Request.Context(), actorID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRestaurantResponse(*restaurant))
}

func UpdateRestaurantHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	restaurant, err := catalog.UpdateRestaurant(c.Request.Context(), actorID, id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRestaurantResponse(*restaurant))
}

// DeleteRestaurantHandler soft deletes the restaurant and its menu.
func DeleteRestaurantHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := catalog.DeleteRestaurant(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant soft deleted successfully.",
	})
}

// GetMenuItemListHandler lists active menu items, optionally filtered by
// the restaurantId query parameter.
func GetMenuItemListHandler(c *gin.Context, catalog *services.CatalogService) {
	var restaurantID uint
	if raw := c.Query("restaurantId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid restaurantId",
			})
			return
		}
		restaurantID = uint(id)
	}

	menuItems, err := catalog.ListMenuItems(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMenuItemResponses(menuItems))
}

func GetMenuItemDataHandler(c *gin.Context, catalog *services.CatalogService) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	menuItem, err := catalog.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMenuItemResponse(*menuItem))
}

func CreateMenuItemHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	menuItem, err := catalog.CreateMenuItem(c.Request.Context(), actorID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newMenuItemResponse(*menuItem))
}

func UpdateMenuItemHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	menuItem, err := catalog.UpdateMenuItem(c.Request.Context(), actorID, id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newMenuItemResponse(*menuItem))
}

func DeleteMenuItemHandler(c *gin.Context, catalog *services.CatalogService) {
	actorID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := catalog.DeleteMenuItem(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item soft deleted successfully.",
	})
}

package handlers

import (
	"encoding/json"
	"time"

	"FoodOrder/audit"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
)

// money renders an amount as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}
}

type profileResponse struct {
	userResponse
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
	Message   string       `json:"message"`
}

type menuItemResponse struct {
	ID           uint        `json:"id"`
	RestaurantID uint        `json:"restaurantId"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        json.Number `json:"price"`
	ImageURL     *string     `json:"imageUrl,omitempty"`
	IsDeleted    bool        `json:"isDeleted"`
}

func newMenuItemResponse(item models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        money(item.Price),
		ImageURL:     item.ImageURL,
		IsDeleted:    item.IsDeleted,
	}
}

func newMenuItemResponses(items []models.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newMenuItemResponse(item))
	}
	return out
}

type restaurantResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	Rating      float64            `json:"rating"`
	Address     string             `json:"address"`
	ImageURL    *string            `json:"imageUrl,omitempty"`
	IsDeleted   bool               `json:"isDeleted"`
	MenuItems   []menuItemResponse `json:"menuItems"`
}

func newRestaurantResponse(restaurant models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Location:    restaurant.Location,
		Description: restaurant.Description,
		Rating:      restaurant.Rating,
		Address:     restaurant.Address,
		ImageURL:    restaurant.ImageURL,
		IsDeleted:   restaurant.IsDeleted,
		MenuItems:   newMenuItemResponses(restaurant.MenuItems),
	}
}

func newRestaurantResponses(restaurants []models.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		out = append(out, newRestaurantResponse(restaurant))
	}
	return out
}

type reviewResponse struct {
	ID            uint      `json:"id"`
	RestaurantID  uint      `json:"restaurantId"`
	CustomerID    uint      `json:"customerId"`
	Username      string    `json:"username,omitempty"`
	Comment       string    `json:"comment"`
	CommentedDate time.Time `json:"commentedDate"`
}

func newReviewResponse(review models.Review) reviewResponse {
	return reviewResponse{
		ID:            review.ID,
		RestaurantID:  review.RestaurantID,
		CustomerID:    review.CustomerID,
		Username:      review.Customer.Username,
		Comment:       review.Comment,
		CommentedDate: review.CommentedDate,
	}
}

type cartItemResponse struct {
	ID         uint             `json:"id"`
	MenuItemID uint             `json:"menuItemId"`
	Quantity   int              `json:"quantity"`
	MenuItem   menuItemResponse `json:"menuItem"`
}

type cartResponse struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"userId"`
	CartItems []cartItemResponse `json:"cartItems"`
	Total     json.Number        `json:"total"`
}

func newCartResponse(cart models.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.CartItems))
	total := decimal.Zero
	for _, item := range cart.CartItems {
		items = append(items, cartItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			MenuItem:   newMenuItemResponse(item.MenuItem),
		})
		total = total.Add(item.MenuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return cartResponse{ID: cart.ID, UserID: cart.UserID, CartItems: items, Total: money(total)}
}

type orderItemResponse struct {
	ID         uint              `json:"id"`
	MenuItemID uint              `json:"menuItemId"`
	Quantity   int               `json:"quantity"`
	UnitPrice  json.Number       `json:"unitPrice"`
	Price      json.Number       `json:"price"`
	MenuItem   *menuItemResponse `json:"menuItem,omitempty"`
}

type restaurantSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type orderResponse struct {
	ID           uint                `json:"id"`
	CustomerID   uint                `json:"customerId"`
	RestaurantID uint                `json:"restaurantId"`
	Restaurant   *restaurantSummary  `json:"restaurant,omitempty"`
	TotalAmount  json.Number         `json:"totalAmount"`
	OrderStatus  models.OrderStatus  `json:"orderStatus"`
	OrderItems   []orderItemResponse `json:"orderItems"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func newOrderResponse(order models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		unitPrice := item.Price
		if item.Quantity > 0 {
			unitPrice = item.Price.Div(decimal.NewFromInt(int64(item.Quantity)))
		}

		response := orderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  money(unitPrice),
			Price:      money(item.Price),
		}
		if item.MenuItem.ID != 0 {
			menuItem := newMenuItemResponse(item.MenuItem)
			response.MenuItem = &menuItem
		}
		items = append(items, response)
	}

	response := orderResponse{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		RestaurantID: order.RestaurantID,
		TotalAmount:  money(order.TotalAmount),
		OrderStatus:  order.OrderStatus,
		OrderItems:   items,
		CreatedAt:    order.CreatedAt,
	}
	if order.Restaurant.ID != 0 {
		response.Restaurant = &restaurantSummary{ID: order.Restaurant.ID, Name: order.Restaurant.Name}
	}
	return response
}

func newOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}
	return out
}

type auditEntryResponse struct {
	Action    string                 `json:"action"`
	ActorID   uint                   `json:"actorId"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

func newAuditEntryResponses(entries []audit.Entry) []auditEntryResponse {
	out := make([]auditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, auditEntryResponse{
			Action:    entry.Action,
			ActorID:   entry.ActorID,
			Data:      entry.Data,
			CreatedAt: entry.CreatedAt,
		})
	}
	return out
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"FoodOrder/audit"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
)

func TestPlaceOrderTotalsCatalogPrices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "paula")
	restaurant := env.createRestaurant(t, "Curry House")
	korma := env.createMenuItem(t, restaurant.ID, "Korma", "10.50")
	naan := env.createMenuItem(t, restaurant.ID, "Naan", "2.25")

	order, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items: []OrderLine{
			{MenuItemID: korma.ID, Quantity: 2},
			{MenuItemID: naan.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	want := decimal.RequireFromString("27.75")
	if !order.TotalAmount.Equal(want) {
		t.Errorf("total = %s, want %s", order.TotalAmount, want)
	}
	if order.OrderStatus != models.OrderStatusPending {
		t.Errorf("status = %q, want Pending", order.OrderStatus)
	}

	stored, err := env.orders.GetOrder(ctx, order.ID, customer.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	sum := decimal.Zero
	for _, item := range stored.OrderItems {
		sum = sum.Add(item.Price)
	}
	if len(stored.OrderItems) != 2 || !sum.Equal(stored.TotalAmount) {
		t.Errorf("lines = %d sum = %s, want 2 lines summing to %s", len(stored.OrderItems), sum, stored.TotalAmount)
	}
	if !stored.OrderItems[0].Price.Equal(decimal.RequireFromString("21.00")) {
		t.Errorf("korma line = %s, want 21.00", stored.OrderItems[0].Price)
	}
}

func TestPlaceOrderRollsBackOnUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "quinn")
	restaurant := env.createRestaurant(t, "Burger Joint")
	burger := env.createMenuItem(t, restaurant.ID, "Burger", "8.00")

	_, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items: []OrderLine{
			{MenuItemID: burger.ID, Quantity: 1},
			{MenuItemID: 4242, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("PlaceOrder() error = %v, want ErrValidation", err)
	}

	if n := countRows(t, env.db, &models.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
	if n := countRows(t, env.db, &models.OrderItem{}); n != 0 {
		t.Errorf("order items = %d, want 0", n)
	}
}

func TestPlaceOrderRejectsForeignAndDeletedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "rosa")
	first := env.createRestaurant(t, "First")
	second := env.createRestaurant(t, "Second")
	own := env.createMenuItem(t, first.ID, "Own", "5.00")
	foreign := env.createMenuItem(t, second.ID, "Foreign", "5.00")

	tests := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"no restaurant", PlaceOrderInput{Items: []OrderLine{{MenuItemID: own.ID, Quantity: 1}}}},
		{"no items", PlaceOrderInput{RestaurantID: first.ID}},
		{"zero quantity", PlaceOrderInput{RestaurantID: first.ID, Items: []OrderLine{{MenuItemID: own.ID, Quantity: 0}}}},
		{"item of another restaurant", PlaceOrderInput{RestaurantID: first.ID, Items: []OrderLine{{MenuItemID: foreign.ID, Quantity: 1}}}},
		{"unknown restaurant", PlaceOrderInput{RestaurantID: 999, Items: []OrderLine{{MenuItemID: own.ID, Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.orders.PlaceOrder(ctx, customer.ID, tt.in); !errors.Is(err, ErrValidation) {
				t.Errorf("PlaceOrder() error = %v, want ErrValidation", err)
			}
		})
	}

	if err := env.catalog.DeleteMenuItem(ctx, 1, own.ID); err != nil {
		t.Fatalf("DeleteMenuItem() error = %v", err)
	}
	_, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: first.ID,
		Items:        []OrderLine{{MenuItemID: own.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("deleted item error = %v, want ErrValidation", err)
	}
	if n := countRows(t, env.db, &models.Order{}); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
}

func TestPlaceOrderRemovesOrderedItemsFromCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "sam")
	restaurant := env.createRestaurant(t, "Wok")
	rice := env.createMenuItem(t, restaurant.ID, "Fried Rice", "6.00")
	tea := env.createMenuItem(t, restaurant.ID, "Tea", "1.50")

	for _, id := range []uint{rice.ID, tea.ID} {
		if _, err := env.carts.AddItem(ctx, customer.ID, id, 1); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
	}

	_, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderLine{{MenuItemID: rice.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	cart, err := env.carts.GetCart(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(cart.CartItems) != 1 || cart.CartItems[0].MenuItemID != tea.ID {
		t.Errorf("cart items = %+v, want only tea", cart.CartItems)
	}
}

func TestSoftDeletedOrderHiddenFromUserOrders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "tina")
	stranger := env.createCustomer(t, "uma")
	restaurant := env.createRestaurant(t, "Crepes")
	crepe := env.createMenuItem(t, restaurant.ID, "Crepe", "5.50")

	place := func() *models.Order {
		order, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
			RestaurantID: restaurant.ID,
			Items:        []OrderLine{{MenuItemID: crepe.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}
		return order
	}
	kept, gone := place(), place()

	if err := env.orders.SoftDeleteOrder(ctx, stranger.ID, gone.ID, stranger.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("SoftDeleteOrder() by stranger error = %v, want ErrNotFound", err)
	}
	if err := env.orders.SoftDeleteOrder(ctx, customer.ID, gone.ID, customer.ID); err != nil {
		t.Fatalf("SoftDeleteOrder() error = %v", err)
	}
	if err := env.orders.SoftDeleteOrder(ctx, customer.ID, gone.ID, customer.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second SoftDeleteOrder() error = %v, want ErrNotFound", err)
	}

	orders, err := env.orders.GetUserOrders(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetUserOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].ID != kept.ID {
		t.Errorf("GetUserOrders() = %+v, want only %d", orders, kept.ID)
	}

	// the row is still there, only flagged
	var stored models.Order
	if err := env.db.First(&stored, gone.ID).Error; err != nil {
		t.Fatalf("load deleted order: %v", err)
	}
	if !stored.IsDeleted {
		t.Errorf("order %d not flagged deleted", gone.ID)
	}
}

func TestGetUserOrdersKeepsDeletedMenuItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "vera")
	restaurant := env.createRestaurant(t, "Bistro")
	special := env.createMenuItem(t, restaurant.ID, "Special", "14.00")

	if _, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderLine{{MenuItemID: special.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}
	if err := env.catalog.DeleteRestaurant(ctx, 1, restaurant.ID); err != nil {
		t.Fatalf("DeleteRestaurant() error = %v", err)
	}

	orders, err := env.orders.GetUserOrders(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetUserOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].OrderItems[0].MenuItem.Name != "Special" {
		t.Errorf("GetUserOrders() = %+v, want the order with its menu item", orders)
	}
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "walt")
	restaurant := env.createRestaurant(t, "Chippy")
	fish := env.createMenuItem(t, restaurant.ID, "Fish", "9.95")

	order, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderLine{{MenuItemID: fish.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if _, err := env.orders.UpdateStatus(ctx, 1, order.ID, models.OrderStatus("Cooking")); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status error = %v, want ErrValidation", err)
	}

	updated, err := env.orders.UpdateStatus(ctx, 1, order.ID, models.OrderStatusOutForDelivery)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.OrderStatus != models.OrderStatusOutForDelivery {
		t.Errorf("status = %q", updated.OrderStatus)
	}

	if _, err := env.orders.UpdateStatus(ctx, 1, order.ID, models.OrderStatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("backwards move error = %v, want ErrInvalidTransition", err)
	}
	if _, err := env.orders.UpdateStatus(ctx, 1, order.ID, models.OrderStatusDelivered); err != nil {
		t.Fatalf("UpdateStatus() to Delivered error = %v", err)
	}
	_, err = env.orders.UpdateStatus(ctx, 1, order.ID, models.OrderStatusDelivered)
	if !errors.Is(err, ErrInvalidTransition) || !strings.Contains(err.Error(), "already Delivered") {
		t.Errorf("update of delivered order error = %v, want ErrInvalidTransition naming Delivered", err)
	}
	if _, err := env.orders.UpdateStatus(ctx, 1, 999, models.OrderStatusDelivered); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown order error = %v, want ErrNotFound", err)
	}

	history, err := env.orders.History(ctx, order.ID, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 || history[0].Action != audit.ActionUpdateOrderStatus || history[2].Action != audit.ActionPlaceOrder {
		t.Errorf("history = %+v", history)
	}

	orders, err := env.orders.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].Restaurant.Name != "Chippy" {
		t.Errorf("ListOrders() = %+v", orders)
	}
}

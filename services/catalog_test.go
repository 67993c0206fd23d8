package services

import (
	"context"
	"errors"
	"testing"

	"FoodOrder/audit"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memoryCatalog is an in-process cache.Catalog. beforeStore runs once at the
// start of the next StoreRestaurants call.
type memoryCatalog struct {
	restaurants []models.Restaurant
	cached      bool
	generation  int64
	beforeStore func()
}

func (c *memoryCatalog) Restaurants(context.Context) ([]models.Restaurant, bool, error) {
	return c.restaurants, c.cached, nil
}

func (c *memoryCatalog) Generation(context.Context) (int64, error) {
	return c.generation, nil
}

func (c *memoryCatalog) StoreRestaurants(_ context.Context, generation int64, restaurants []models.Restaurant) error {
	if hook := c.beforeStore; hook != nil {
		c.beforeStore = nil
		hook()
	}
	if generation != c.generation {
		return nil
	}
	c.restaurants, c.cached = restaurants, true
	return nil
}

func (c *memoryCatalog) Invalidate(context.Context) error {
	c.generation++
	c.restaurants, c.cached = nil, false
	return nil
}

func TestSoftDeletedRestaurantHiddenFromListButFoundById(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	kept := env.createRestaurant(t, "Kept")
	gone := env.createRestaurant(t, "Gone")
	menuItem := env.createMenuItem(t, gone.ID, "Soup", "4.50")

	if err := env.catalog.DeleteRestaurant(ctx, 1, gone.ID); err != nil {
		t.Fatalf("DeleteRestaurant() error = %v", err)
	}

	restaurants, err := env.catalog.ListRestaurants(ctx)
	if err != nil {
		t.Fatalf("ListRestaurants() error = %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].ID != kept.ID {
		t.Errorf("ListRestaurants() = %+v, want only %d", restaurants, kept.ID)
	}

	found, err := env.catalog.GetRestaurant(ctx, gone.ID)
	if err != nil {
		t.Fatalf("GetRestaurant() error = %v", err)
	}
	if !found.IsDeleted {
		t.Errorf("GetRestaurant().IsDeleted = false, want true")
	}

	// deleting a restaurant takes its menu with it
	item, err := env.catalog.GetMenuItem(ctx, menuItem.ID)
	if err != nil {
		t.Fatalf("GetMenuItem() error = %v", err)
	}
	if !item.IsDeleted {
		t.Errorf("menu item of deleted restaurant still active")
	}

	if err := env.catalog.DeleteRestaurant(ctx, 1, gone.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRestaurant() error = %v, want ErrNotFound", err)
	}
	if _, err := env.catalog.UpdateRestaurant(ctx, 1, gone.ID, RestaurantInput{Name: "Back", Rating: 3}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateRestaurant() on deleted row error = %v, want ErrNotFound", err)
	}
}

func TestSoftDeletedMenuItemHiddenFromList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	restaurant := env.createRestaurant(t, "Noodle Bar")
	ramen := env.createMenuItem(t, restaurant.ID, "Ramen", "11.00")
	udon := env.createMenuItem(t, restaurant.ID, "Udon", "10.00")

	if err := env.catalog.DeleteMenuItem(ctx, 1, ramen.ID); err != nil {
		t.Fatalf("DeleteMenuItem() error = %v", err)
	}

	menuItems, err := env.catalog.ListMenuItems(ctx, 0)
	if err != nil {
		t.Fatalf("ListMenuItems() error = %v", err)
	}
	if len(menuItems) != 1 || menuItems[0].ID != udon.ID {
		t.Errorf("ListMenuItems() = %+v, want only %d", menuItems, udon.ID)
	}

	restaurants, err := env.catalog.ListRestaurants(ctx)
	if err != nil {
		t.Fatalf("ListRestaurants() error = %v", err)
	}
	if len(restaurants) != 1 || len(restaurants[0].MenuItems) != 1 {
		t.Fatalf("ListRestaurants() = %+v, want one restaurant with one item", restaurants)
	}

	found, err := env.catalog.GetMenuItem(ctx, ramen.ID)
	if err != nil {
		t.Fatalf("GetMenuItem() error = %v", err)
	}
	if !found.IsDeleted {
		t.Errorf("GetMenuItem().IsDeleted = false, want true")
	}

	if err := env.catalog.DeleteMenuItem(ctx, 1, ramen.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteMenuItem() error = %v, want ErrNotFound", err)
	}
}

func TestCatalogValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.catalog.CreateRestaurant(ctx, 1, RestaurantInput{Name: " ", Rating: 4}); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name error = %v, want ErrValidation", err)
	}
	if _, err := env.catalog.CreateRestaurant(ctx, 1, RestaurantInput{Name: "Zero", Rating: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("zero rating error = %v, want ErrValidation", err)
	}

	restaurant := env.createRestaurant(t, "Valid")
	if _, err := env.catalog.CreateMenuItem(ctx, 1, MenuItemInput{RestaurantID: restaurant.ID, Name: "Free", Price: decimal.Zero}); !errors.Is(err, ErrValidation) {
		t.Errorf("zero price error = %v, want ErrValidation", err)
	}
	if _, err := env.catalog.CreateMenuItem(ctx, 1, MenuItemInput{Name: "Orphan", Price: decimal.NewFromInt(3)}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing restaurant error = %v, want ErrValidation", err)
	}
	if _, err := env.catalog.CreateMenuItem(ctx, 1, MenuItemInput{RestaurantID: 999, Name: "Ghost", Price: decimal.NewFromInt(3)}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown restaurant error = %v, want ErrValidation", err)
	}
}

func TestUpdateMenuItemKeepsOrderedPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "gina")
	restaurant := env.createRestaurant(t, "Pizzeria")
	pizza := env.createMenuItem(t, restaurant.ID, "Margherita", "9.00")

	order, err := env.orders.PlaceOrder(ctx, customer.ID, PlaceOrderInput{
		RestaurantID: restaurant.ID,
		Items:        []OrderLine{{MenuItemID: pizza.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	updated, err := env.catalog.UpdateMenuItem(ctx, 1, pizza.ID, MenuItemInput{Name: "Margherita", Price: decimal.RequireFromString("12.50")})
	if err != nil {
		t.Fatalf("UpdateMenuItem() error = %v", err)
	}
	if !updated.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("price = %s, want 12.50", updated.Price)
	}

	stored, err := env.orders.GetOrder(ctx, order.ID, customer.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if !stored.OrderItems[0].Price.Equal(decimal.RequireFromString("18.00")) {
		t.Errorf("order line price = %s, want 18.00", stored.OrderItems[0].Price)
	}
}

func TestCatalogChangesAreAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	restaurant := env.createRestaurant(t, "Audited")
	if _, err := env.catalog.UpdateRestaurant(ctx, 1, restaurant.ID, RestaurantInput{Name: "Audited Too", Rating: 5}); err != nil {
		t.Fatalf("UpdateRestaurant() error = %v", err)
	}

	entries, err := env.audit.History(ctx, audit.EntityRestaurant, restaurant.ID, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Action != audit.ActionUpdateRestaurant || entries[1].Action != audit.ActionCreateRestaurant {
		t.Errorf("actions = %s, %s", entries[0].Action, entries[1].Action)
	}

	menuItem := env.createMenuItem(t, restaurant.ID, "Pie", "3.00")
	if err := env.catalog.DeleteMenuItem(ctx, 1, menuItem.ID); err != nil {
		t.Fatalf("DeleteMenuItem() error = %v", err)
	}
	if err := env.catalog.DeleteRestaurant(ctx, 1, restaurant.ID); err != nil {
		t.Fatalf("DeleteRestaurant() error = %v", err)
	}

	want := []string{
		audit.ActionCreateRestaurant,
		audit.ActionUpdateRestaurant,
		audit.ActionCreateMenuItem,
		audit.ActionDeleteMenuItem,
		audit.ActionDeleteRestaurant,
	}
	got := env.audit.Actions()
	if len(got) != len(want) {
		t.Fatalf("Actions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actions()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestListRestaurantsSkipsStaleCacheFill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	catalogCache := &memoryCatalog{}
	env.catalog = NewCatalogService(env.db, catalogCache, env.audit, zap.NewNop())

	kept := env.createRestaurant(t, "Kept")
	gone := env.createRestaurant(t, "Gone")

	// the delete commits after the listing read the database but before it
	// fills the cache
	catalogCache.beforeStore = func() {
		if err := env.catalog.DeleteRestaurant(ctx, 1, gone.ID); err != nil {
			t.Errorf("DeleteRestaurant() error = %v", err)
		}
	}
	if _, err := env.catalog.ListRestaurants(ctx); err != nil {
		t.Fatalf("ListRestaurants() error = %v", err)
	}
	if catalogCache.cached {
		t.Fatalf("cache filled with %d restaurants read before the delete", len(catalogCache.restaurants))
	}

	for _, source := range []string{"database", "cache"} {
		restaurants, err := env.catalog.ListRestaurants(ctx)
		if err != nil {
			t.Fatalf("ListRestaurants() from %s error = %v", source, err)
		}
		if len(restaurants) != 1 || restaurants[0].ID != kept.ID {
			t.Errorf("ListRestaurants() from %s = %+v, want only %d", source, restaurants, kept.ID)
		}
	}
	if !catalogCache.cached {
		t.Errorf("cache not refilled after the delete")
	}
}

func TestReviews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createCustomer(t, "hank")
	restaurant := env.createRestaurant(t, "Diner")

	if _, err := env.reviews.AddReview(ctx, customer.ID, restaurant.ID, "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("empty comment error = %v, want ErrValidation", err)
	}
	if _, err := env.reviews.AddReview(ctx, customer.ID, 999, "Great"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown restaurant error = %v, want ErrNotFound", err)
	}

	if _, err := env.reviews.AddReview(ctx, customer.ID, restaurant.ID, "Great fries"); err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	reviews, err := env.reviews.ListReviews(ctx, restaurant.ID)
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}
	if len(reviews) != 1 || reviews[0].Comment != "Great fries" || reviews[0].Customer.Username != "hank" {
		t.Errorf("ListReviews() = %+v", reviews)
	}
}

package services

import (
	"context"
	"testing"
	"time"

	"FoodOrder/audit"
	"FoodOrder/cache"
	"FoodOrder/config"
	"FoodOrder/jwt"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	audit    *audit.Memory
	accounts *AccountService
	catalog  *CatalogService
	reviews  *ReviewService
	carts    *CartService
	orders   *OrderService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// every connection to :memory: is its own database, so keep exactly one
	db, err := config.SetupDatabaseConnection(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	rec := &audit.Memory{}
	log := zap.NewNop()
	carts := NewCartService(db, log)

	return &testEnv{
		db:       db,
		audit:    rec,
		accounts: NewAccountService(db, jwt.NewIssuer("test-secret", "food-order-test", time.Hour), rec, log),
		catalog:  NewCatalogService(db, cache.Nop{}, rec, log),
		reviews:  NewReviewService(db, log),
		carts:    carts,
		orders:   NewOrderService(db, carts, rec, log),
	}
}

func (e *testEnv) createCustomer(t *testing.T, username string) models.User {
	t.Helper()

	session, err := e.accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Address:  "1 Main Street",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return session.User
}

func (e *testEnv) createRestaurant(t *testing.T, name string) models.Restaurant {
	t.Helper()

	restaurant, err := e.catalog.CreateRestaurant(context.Background(), 1, RestaurantInput{
		Name:     name,
		Location: "Downtown",
		Rating:   4.5,
		Address:  "2 Side Street",
	})
	if err != nil {
		t.Fatalf("create restaurant %s: %v", name, err)
	}
	return *restaurant
}

func (e *testEnv) createMenuItem(t *testing.T, restaurantID uint, name, price string) models.MenuItem {
	t.Helper()

	menuItem, err := e.catalog.CreateMenuItem(context.Background(), 1, MenuItemInput{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("create menu item %s: %v", name, err)
	}
	return *menuItem
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

package services

import (
	"context"
	"errors"
	"fmt"

	"FoodOrder/audit"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderLine struct {
	MenuItemID uint
	Quantity   int
}

type PlaceOrderInput struct {
	RestaurantID uint
	Items        []OrderLine
}

func (in PlaceOrderInput) validate() error {
	if in.RestaurantID == 0 {
		return validationf("restaurantId is required")
	}
	if len(in.Items) == 0 {
		return validationf("an order needs at least one item")
	}
	for _, line := range in.Items {
		if line.MenuItemID == 0 {
			return validationf("menuItemId is required")
		}
		if line.Quantity <= 0 {
			return validationf("quantity of menu item %d must be greater than zero", line.MenuItemID)
		}
	}
	return nil
}

type OrderService struct {
	db    *gorm.DB
	carts *CartService
	audit audit.Recorder
	log   *zap.Logger
}

func NewOrderService(db *gorm.DB, carts *CartService, rec audit.Recorder, log *zap.Logger) *OrderService {
	return &OrderService{db: db, carts: carts, audit: rec, log: log.Named("order")}
}

// PlaceOrder prices every line from the current catalog and stores the
// order with all of its lines in one transaction. Nothing is written when
// any line refers to an unknown, deleted or foreign menu item.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uint, in PlaceOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerID:   customerID,
		RestaurantID: in.RestaurantID,
		OrderStatus:  models.OrderStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		err := tx.Scopes(models.NotDeleted).Select("id").First(&restaurant, in.RestaurantID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("restaurant %d not found", in.RestaurantID)
			}
			return fmt.Errorf("find restaurant: %w", err)
		}

		menuItems, err := s.menuItemsByID(tx, in.Items)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range in.Items {
			menuItem, ok := menuItems[line.MenuItemID]
			if !ok || menuItem.IsDeleted || menuItem.RestaurantID != in.RestaurantID {
				return validationf("menu item with ID %d not found", line.MenuItemID)
			}

			price := menuItem.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
			total = total.Add(price)
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				Price:      price,
			})
		}
		order.TotalAmount = total

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.Uint("orderID", order.ID),
		zap.Uint("customerID", customerID),
		zap.String("total", order.TotalAmount.StringFixed(2)))

	menuItemIDs := make([]uint, 0, len(in.Items))
	for _, line := range in.Items {
		menuItemIDs = append(menuItemIDs, line.MenuItemID)
	}
	if _, err := s.carts.RemoveMenuItems(ctx, customerID, menuItemIDs); err != nil {
		s.log.Warn("remove ordered items from cart", zap.Uint("orderID", order.ID), zap.Error(err))
	}

	recordAudit(ctx, s.audit, s.log, audit.Entry{
		Action:   audit.ActionPlaceOrder,
		Entity:   audit.EntityOrder,
		EntityID: order.ID,
		ActorID:  customerID,
		Data: map[string]interface{}{
			"restaurantId": order.RestaurantID,
			"totalAmount":  order.TotalAmount.StringFixed(2),
			"items":        len(order.OrderItems),
		},
	})
	return &order, nil
}

func (s *OrderService) menuItemsByID(tx *gorm.DB, lines []OrderLine) (map[uint]models.MenuItem, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}

	var menuItems []models.MenuItem
	if err := tx.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}

	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, menuItem := range menuItems {
		byID[menuItem.ID] = menuItem
	}
	return byID, nil
}

// GetUserOrders lists the customer's orders that have not been deleted.
// Lines keep their menu item even if it was removed from the catalog since.
func (s *OrderService) GetUserOrders(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Scopes(models.NotDeleted).
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order. ownerID restricts it to that customer's
// orders; zero means any order.
func (s *OrderService) GetOrder(ctx context.Context, orderID, ownerID uint) (*models.Order, error) {
	query := s.db.WithContext(ctx).
		Scopes(models.NotDeleted).
		Preload("Restaurant").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem")
	if ownerID != 0 {
		query = query.Where("customer_id = ?", ownerID)
	}

	var order models.Order
	if err := query.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// ListOrders returns every order that has not been deleted, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Scopes(models.NotDeleted).
		Preload("Restaurant").
		Preload("OrderItems").
		Preload("OrderItems.MenuItem").
		Order("created_at DESC, id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order forward in its status flow. The write only
// lands if the status is still the one that was read.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, validationf("unknown order status %q", status)
	}

	var order models.Order
	err := s.db.WithContext(ctx).Scopes(models.NotDeleted).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	previous := order.OrderStatus
	if previous.Terminal() {
		return nil, fmt.Errorf("%w: order %d is already %s", ErrInvalidTransition, orderID, previous)
	}
	if !previous.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, previous, status)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND order_status = ? AND is_deleted = ?", orderID, previous, false).
		Update("order_status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: order %d was changed concurrently", ErrConflict, orderID)
	}
	order.OrderStatus = status

	recordAudit(ctx, s.audit, s.log, audit.Entry{
		Action:   audit.ActionUpdateOrderStatus,
		Entity:   audit.EntityOrder,
		EntityID: orderID,
		ActorID:  actorID,
		Data:     map[string]interface{}{"from": string(previous), "to": string(status)},
	})
	return &order, nil
}

// SoftDeleteOrder flags an order as deleted. ownerID restricts it to that
// customer's orders; zero means any order.
func (s *OrderService) SoftDeleteOrder(ctx context.Context, actorID, orderID, ownerID uint) error {
	query := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND is_deleted = ?", orderID, false)
	if ownerID != 0 {
		query = query.Where("customer_id = ?", ownerID)
	}

	result := query.Update("is_deleted", true)
	if result.Error != nil {
		return fmt.Errorf("delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("order %d not found", orderID)
	}

	recordAudit(ctx, s.audit, s.log, audit.Entry{
		Action:   audit.ActionSoftDeleteOrder,
		Entity:   audit.EntityOrder,
		EntityID: orderID,
		ActorID:  actorID,
	})
	return nil
}

// History returns the audited changes of an order, newest first.
func (s *OrderService) History(ctx context.Context, orderID uint, limit int64) ([]audit.Entry, error) {
	entries, err := s.audit.History(ctx, audit.EntityOrder, orderID, limit)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return entries, nil
}

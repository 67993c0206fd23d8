package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FoodOrder/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemUpdate struct {
	CartItemID  uint
	NewQuantity int
}

// CartService keeps one cart per user. A menu item appears at most once
// per cart; adding it again raises the quantity.
type CartService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCartService(db *gorm.DB, log *zap.Logger) *CartService {
	return &CartService{db: db, log: log.Named("cart")}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	return s.loadCart(s.db.WithContext(ctx), userID)
}

func (s *CartService) loadCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.
		Preload("CartItems", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("CartItems.MenuItem").
		Where("user_id = ?", userID).
		First(&cart).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("cart not found")
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

// AddItem puts quantity units of a menu item into the user's cart, creating
// the cart on first use. The line is written with a single upsert keyed on
// (cart, menu item) so concurrent adds of the same item are summed.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, validationf("quantity must be greater than zero")
	}
	if menuItemID == 0 {
		return nil, validationf("menuItemId is required")
	}

	var cart *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menuItem models.MenuItem
		err := tx.Scopes(models.NotDeleted).First(&menuItem, menuItemID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("menu item %d not found", menuItemID)
			}
			return fmt.Errorf("find menu item: %w", err)
		}

		cartID, err := s.ensureCart(tx, userID)
		if err != nil {
			return err
		}

		item := models.CartItem{CartID: cartID, MenuItemID: menuItemID, Quantity: quantity}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		}).Create(&item).Error
		if err != nil {
			return fmt.Errorf("add cart item: %w", err)
		}

		cart, err = s.loadCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("cart item added",
		zap.Uint("userID", userID),
		zap.Uint("menuItemID", menuItemID),
		zap.Int("quantity", quantity))
	return cart, nil
}

func (s *CartService) ensureCart(tx *gorm.DB, userID uint) (uint, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.Cart{UserID: userID}).Error
	if err != nil {
		return 0, fmt.Errorf("create cart: %w", err)
	}

	var cart models.Cart
	if err := tx.Select("id").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return 0, fmt.Errorf("find cart: %w", err)
	}
	return cart.ID, nil
}

// RemoveItem deletes one cart line. ownerID restricts the lookup to that
// user's cart; zero means any cart.
func (s *CartService) RemoveItem(ctx context.Context, cartItemID, ownerID uint) error {
	query := s.db.WithContext(ctx).Where("id = ?", cartItemID)
	if ownerID != 0 {
		query = query.Where("cart_id IN (?)", s.db.Model(&models.Cart{}).Select("id").Where("user_id = ?", ownerID))
	}

	result := query.Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("cart item %d not found", cartItemID)
	}
	return nil
}

// ClearCart empties the user's cart but keeps the cart itself.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	var cart models.Cart
	err := s.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("cart not found")
		}
		return fmt.Errorf("find cart: %w", err)
	}

	if err := s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// UpdateItems sets new quantities on lines of the user's cart. Either every
// update is applied or none is.
func (s *CartService) UpdateItems(ctx context.Context, userID uint, updates []CartItemUpdate) (*models.Cart, error) {
	if len(updates) == 0 {
		return nil, validationf("no cart items to update")
	}
	for _, update := range updates {
		if update.NewQuantity < 1 {
			return nil, validationf("quantity of cart item %d must be at least 1", update.CartItemID)
		}
	}

	var cart *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.loadCart(tx, userID)
		if err != nil {
			return err
		}

		for _, update := range updates {
			var item models.CartItem
			err := tx.Where("id = ? AND cart_id = ?", update.CartItemID, current.ID).First(&item).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("cart item %d not found", update.CartItemID)
				}
				return fmt.Errorf("find cart item: %w", err)
			}

			if err := tx.Model(&item).Update("quantity", update.NewQuantity).Error; err != nil {
				return fmt.Errorf("update cart item: %w", err)
			}
		}

		cart, err = s.loadCart(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveMenuItems drops the given menu items from the user's cart. Used
// after an order has been placed for them.
func (s *CartService) RemoveMenuItems(ctx context.Context, userID uint, menuItemIDs []uint) (int64, error) {
	if len(menuItemIDs) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("cart_id IN (?)", s.db.Model(&models.Cart{}).Select("id").Where("user_id = ?", userID)).
		Where("menu_item_id IN ?", menuItemIDs).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("remove ordered items from cart: %w", result.Error)
	}
	return result.RowsAffected, nil
}

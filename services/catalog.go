package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"FoodOrder/audit"
	"FoodOrder/cache"
	"FoodOrder/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RestaurantInput struct {
	Name        string
	Location    string
	Description string
	Rating      float64
	Address     string
	ImageURL    *string
}

func (in RestaurantInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("restaurant name is required")
	}
	if in.Rating <= 0 {
		return validationf("restaurant rating must be positive")
	}
	return nil
}

type MenuItemInput struct {
	RestaurantID uint
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     *string
}

func (in MenuItemInput) validate(requireRestaurant bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("menu item name is required")
	}
	if !in.Price.IsPositive() {
		return validationf("menu item price must be positive")
	}
	if requireRestaurant && in.RestaurantID == 0 {
		return validationf("restaurantId is required")
	}
	return nil
}

// CatalogService manages restaurants and their menu items. Deletes only
// set the IsDeleted flag so order history keeps resolving.
type CatalogService struct {
	db    *gorm.DB
	cache cache.Catalog
	audit audit.Recorder
	log   *zap.Logger
}

func NewCatalogService(db *gorm.DB, catalog cache.Catalog, rec audit.Recorder, log *zap.Logger) *CatalogService {
	return &CatalogService{db: db, cache: catalog, audit: rec, log: log.Named("catalog")}
}

// ListRestaurants returns active restaurants with their active menu items,
// served from the cache when possible.
func (s *CatalogService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	restaurants, ok, err := s.cache.Restaurants(ctx)
	if err != nil {
		s.log.Warn("read restaurant cache", zap.Error(err))
	}
	if ok {
		return restaurants, nil
	}

	generation, generationErr := s.cache.Generation(ctx)
	if generationErr != nil {
		s.log.Warn("read restaurant cache generation", zap.Error(generationErr))
	}

	err = s.db.WithContext(ctx).
		Scopes(models.NotDeleted).
		Preload("MenuItems", models.NotDeleted).
		Order("id").
		Find(&restaurants).
		Error
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	if generationErr != nil {
		return restaurants, nil
	}
	if err := s.cache.StoreRestaurants(ctx, generation, restaurants); err != nil {
		s.log.Warn("fill restaurant cache", zap.Error(err))
	}
	return restaurants, nil
}

// GetRestaurant looks a restaurant up by id, soft-deleted or not.
func (s *CatalogService) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("MenuItems", models.NotDeleted).
		First(&restaurant, id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("restaurant %d not found", id)
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &restaurant, nil
}

func (s *CatalogService) activeRestaurant(tx *gorm.DB, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := tx.Scopes(models.NotDeleted).First(&restaurant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("restaurant %d not found or has been deleted", id)
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &restaurant, nil
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, actorID uint, in RestaurantInput) (*models.Restaurant, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	restaurant := models.Restaurant{
		Name:        strings.TrimSpace(in.Name),
		Location:    in.Location,
		Description: in.Description,
		Rating:      in.Rating,
		Address:     in.Address,
		ImageURL:    in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionCreateRestaurant,
		Entity:   audit.EntityRestaurant,
		EntityID: restaurant.ID,
		ActorID:  actorID,
		Data:     map[string]interface{}{"name": restaurant.Name},
	})
	return &restaurant, nil
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, actorID, id uint, in RestaurantInput) (*models.Restaurant, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	restaurant, err := s.activeRestaurant(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = strings.TrimSpace(in.Name)
	restaurant.Location = in.Location
	restaurant.Description = in.Description
	restaurant.Rating = in.Rating
	restaurant.Address = in.Address
	if in.ImageURL != nil {
		restaurant.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		return nil, fmt.Errorf("update restaurant: %w", err)
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionUpdateRestaurant,
		Entity:   audit.EntityRestaurant,
		EntityID: restaurant.ID,
		ActorID:  actorID,
	})
	return restaurant, nil
}

// DeleteRestaurant soft-deletes the restaurant and all of its menu items
// in one transaction.
func (s *CatalogService) DeleteRestaurant(ctx context.Context, actorID, id uint) error {
	var deletedItems int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurant, err := s.activeRestaurant(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Model(restaurant).Update("is_deleted", true).Error; err != nil {
			return fmt.Errorf("delete restaurant: %w", err)
		}

		result := tx.Model(&models.MenuItem{}).
			Where("restaurant_id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if result.Error != nil {
			return fmt.Errorf("delete menu items: %w", result.Error)
		}
		deletedItems = result.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionDeleteRestaurant,
		Entity:   audit.EntityRestaurant,
		EntityID: id,
		ActorID:  actorID,
		Data:     map[string]interface{}{"menuItems": deletedItems},
	})
	return nil
}

// ListMenuItems returns active menu items, optionally for one restaurant.
func (s *CatalogService) ListMenuItems(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	query := s.db.WithContext(ctx).Scopes(models.NotDeleted)
	if restaurantID != 0 {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var menuItems []models.MenuItem
	if err := query.Order("id").Find(&menuItems).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return menuItems, nil
}

// GetMenuItem looks a menu item up by id, soft-deleted or not.
func (s *CatalogService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var menuItem models.MenuItem
	if err := s.db.WithContext(ctx).First(&menuItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("menu item %d not found", id)
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return &menuItem, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, actorID uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	menuItem := models.MenuItem{
		RestaurantID: in.RestaurantID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price.Round(2),
		ImageURL:     in.ImageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.activeRestaurant(tx, in.RestaurantID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return validationf("restaurant %d not found", in.RestaurantID)
			}
			return err
		}
		if err := tx.Create(&menuItem).Error; err != nil {
			return fmt.Errorf("create menu item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionCreateMenuItem,
		Entity:   audit.EntityMenuItem,
		EntityID: menuItem.ID,
		ActorID:  actorID,
		Data:     map[string]interface{}{"restaurantId": menuItem.RestaurantID, "price": menuItem.Price.StringFixed(2)},
	})
	return &menuItem, nil
}

// UpdateMenuItem changes name, description, price and image. The change
// never reaches existing order lines, which hold their own price.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, actorID, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	var menuItem models.MenuItem
	err := s.db.WithContext(ctx).Scopes(models.NotDeleted).First(&menuItem, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("menu item %d not found or has been deleted", id)
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}

	menuItem.Name = strings.TrimSpace(in.Name)
	menuItem.Description = in.Description
	menuItem.Price = in.Price.Round(2)
	if in.ImageURL != nil {
		menuItem.ImageURL = in.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&menuItem).Error; err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionUpdateMenuItem,
		Entity:   audit.EntityMenuItem,
		EntityID: menuItem.ID,
		ActorID:  actorID,
		Data:     map[string]interface{}{"price": menuItem.Price.StringFixed(2)},
	})
	return &menuItem, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, actorID, id uint) error {
	result := s.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return fmt.Errorf("delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundf("menu item %d not found", id)
	}

	s.catalogChanged(ctx, audit.Entry{
		Action:   audit.ActionDeleteMenuItem,
		Entity:   audit.EntityMenuItem,
		EntityID: id,
		ActorID:  actorID,
	})
	return nil
}

func (s *CatalogService) catalogChanged(ctx context.Context, entry audit.Entry) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("invalidate restaurant cache", zap.Error(err))
	}
	recordAudit(ctx, s.audit, s.log, entry)
}

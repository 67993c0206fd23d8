package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FoodOrder/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReviewService struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func NewReviewService(db *gorm.DB, log *zap.Logger) *ReviewService {
	return &ReviewService{db: db, log: log.Named("review"), now: time.Now}
}

// ListReviews returns the reviews of a restaurant, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, restaurantID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("restaurant_id = ?", restaurantID).
		Order("commented_date DESC, id DESC").
		Find(&reviews).
		Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) AddReview(ctx context.Context, customerID, restaurantID uint, comment string) (*models.Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, validationf("comment is required")
	}

	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Scopes(models.NotDeleted).First(&restaurant, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("restaurant %d not found or has been deleted", restaurantID)
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	review := models.Review{
		RestaurantID:  restaurantID,
		CustomerID:    customerID,
		Comment:       comment,
		CommentedDate: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("review added", zap.Uint("restaurantID", restaurantID), zap.Uint("customerID", customerID))
	return &review, nil
}

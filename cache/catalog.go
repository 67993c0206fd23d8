package cache

import (
	"context"

	"FoodOrder/models"
)

// Catalog caches the public restaurant listing. A miss is reported with
// ok == false; callers fall back to the database.
//
// Generation moves on every Invalidate. Callers read it before querying the
// database and hand it back to StoreRestaurants, which drops the write when
// the catalog changed in between.
type Catalog interface {
	Restaurants(ctx context.Context) (restaurants []models.Restaurant, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	StoreRestaurants(ctx context.Context, generation int64, restaurants []models.Restaurant) error
	Invalidate(ctx context.Context) error
}

// Nop is used when no cache backend is configured.
type Nop struct{}

func (Nop) Restaurants(context.Context) ([]models.Restaurant, bool, error)     { return nil, false, nil }
func (Nop) Generation(context.Context) (int64, error)                          { return 0, nil }
func (Nop) StoreRestaurants(context.Context, int64, []models.Restaurant) error { return nil }
func (Nop) Invalidate(context.Context) error                                   { return nil }

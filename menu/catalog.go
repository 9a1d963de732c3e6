package menu

import (
	"context"
	"log"

	"sagra/localstore"
	"sagra/models"
	"sagra/rdx"
	"sagra/upstream"
)

// Catalog reads the dish list from the backend, keeping the last
// successful fetch in redis and in the local mirror as stale fallbacks.
type Catalog struct {
	api   *upstream.Client
	local *localstore.Store
}

func NewCatalog(api *upstream.Client, local *localstore.Store) *Catalog {
	return &Catalog{api: api, local: local}
}

// Dishes fetches the catalog. When the backend errors, the most recent
// snapshot is served instead; stale data beats an empty menu. The error
// is returned only when no snapshot exists either.
func (c *Catalog) Dishes(ctx context.Context) ([]models.Dish, error) {
	dishes, err := c.api.ListDishes(ctx)
	if err == nil {
		rdx.CacheDishes(dishes)
		if perr := c.local.Put(localstore.KeyDishes, dishes); perr != nil {
			log.Println("dishes snapshot persist error:", perr)
		}
		return dishes, nil
	}
	log.Println("dishes fetch error, trying snapshot:", err)

	if cached, ok := rdx.CachedDishes(); ok {
		return cached, nil
	}
	var saved []models.Dish
	if c.local.Get(localstore.KeyDishes, &saved) {
		return saved, nil
	}
	return nil, err
}

// Dish looks a single dish up by id in the fetched catalog.
func (c *Catalog) Dish(ctx context.Context, id string) (models.Dish, bool, error) {
	dishes, err := c.Dishes(ctx)
	if err != nil {
		return models.Dish{}, false, err
	}
	for _, d := range dishes {
		if d.ID == id {
			return d, true, nil
		}
	}
	return models.Dish{}, false, nil
}

package rdx

import (
	"encoding/json"
	"log"
	"time"

	"sagra/globals"
	"sagra/models"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const snapshotTTL = 24 * time.Hour

// Init connects the snapshot cache. An empty addr leaves the cache
// disabled; every helper below degrades to a miss.
func Init(addr string) {
	if addr == "" {
		return
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Println("Redis unavailable, snapshot cache disabled:", err)
		Conn = nil
	}
}

func RdxSet(key, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, snapshotTTL).Err()
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Del(globals.Ctx, key).Err()
}

// CacheDishes stores the last successful dishes fetch. Failures are
// logged and ignored; the cache is a stale fallback, never authoritative.
func CacheDishes(dishes []models.Dish) {
	data, err := json.Marshal(dishes)
	if err != nil {
		return
	}
	if err := RdxSet("snapshot:dishes", string(data)); err != nil {
		log.Println("Redis set error:", err)
	}
}

// CachedDishes returns the last cached dishes fetch, or ok=false.
func CachedDishes() ([]models.Dish, bool) {
	raw, err := RdxGet("snapshot:dishes")
	if err != nil || raw == "" {
		return nil, false
	}
	var dishes []models.Dish
	if err := json.Unmarshal([]byte(raw), &dishes); err != nil {
		return nil, false
	}
	return dishes, true
}

func CacheOrders(orders []models.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := RdxSet("snapshot:orders", string(data)); err != nil {
		log.Println("Redis set error:", err)
	}
}

func CachedOrders() ([]models.Order, bool) {
	raw, err := RdxGet("snapshot:orders")
	if err != nil || raw == "" {
		return nil, false
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, false
	}
	return orders, true
}

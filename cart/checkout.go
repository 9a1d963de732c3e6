package cart

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"sagra/localstore"
	"sagra/models"
	"sagra/upstream"

	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("checkout: customer name is required")
	ErrEmptyCart    = errors.New("checkout: cart is empty")
)

// Checkout submits the cart to the backend exactly once per confirmation.
// The idempotency key is minted per confirmation and reused on retries
// after a failure, so a cooperating backend can deduplicate.
type Checkout struct {
	store *Store
	api   *upstream.Client
	local *localstore.Store

	mu         sync.Mutex
	pendingKey string
}

func NewCheckout(store *Store, api *upstream.Client, local *localstore.Store) *Checkout {
	return &Checkout{store: store, api: api, local: local}
}

func (c *Checkout) idempotencyKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingKey == "" {
		c.pendingKey = uuid.NewString()
	}
	return c.pendingKey
}

func (c *Checkout) resetKey() {
	c.mu.Lock()
	c.pendingKey = ""
	c.mu.Unlock()
}

// Confirm snapshots the cart, freezes it and posts the order. On success
// the cart is cleared and the last-order reference persisted; on failure
// the cart is unlocked with its contents untouched so the user may retry.
func (c *Checkout) Confirm(ctx context.Context, name string) (models.Order, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Order{}, ErrNameRequired
	}

	snapshot, err := c.store.freeze()
	if err != nil {
		return models.Order{}, err
	}
	if len(snapshot) == 0 {
		c.store.release(false)
		return models.Order{}, ErrEmptyCart
	}

	sub := models.OrderSubmission{
		Items:          snapshot,
		Name:           name,
		IdempotencyKey: c.idempotencyKey(),
	}

	order, err := c.api.CreateOrder(ctx, sub)
	if err != nil {
		c.store.release(false)
		return models.Order{}, err
	}

	c.store.release(true)
	c.resetKey()

	ref := models.LastOrder{ID: order.ID, Date: time.Now().Format("2006-01-02")}
	if err := c.local.Put(localstore.KeyLastOrder, ref); err != nil {
		log.Println("lastOrder persist error:", err)
	}
	return order, nil
}

package cart

import (
	"testing"

	"sagra/localstore"
	"sagra/models"
)

func newTestStore(t *testing.T) (*Store, *localstore.Store) {
	t.Helper()
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	return NewStore(local), local
}

func dish(id string, price float64) models.Dish {
	return models.Dish{ID: id, Name: "dish-" + id, Price: price, Image: id + ".webp", Available: true}
}

func TestAddItemIncrementsInsteadOfDuplicating(t *testing.T) {
	store, _ := newTestStore(t)

	d := dish("d1", 5)
	for i := 0; i < 3; i++ {
		if err := store.AddItem(d); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	if err := store.AddItem(dish("d2", 2)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ID != "d1" || items[0].Quantity != 3 {
		t.Fatalf("expected d1 x3, got %s x%d", items[0].ID, items[0].Quantity)
	}
	if items[1].ID != "d2" || items[1].Quantity != 1 {
		t.Fatalf("expected d2 x1, got %s x%d", items[1].ID, items[1].Quantity)
	}
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	store, _ := newTestStore(t)

	d := dish("d1", 5)
	if err := store.AddItem(d); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	d.Price = 9 // later catalog change must not affect the line

	items := store.Items()
	if items[0].Price != 5 {
		t.Fatalf("expected captured price 5, got %v", items[0].Price)
	}
}

func TestTotalIsRecomputedAfterEveryMutation(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddItem(dish("d1", 5))
	store.AddItem(dish("d1", 5))
	store.AddItem(dish("d2", 2.5))
	if got := store.Total(); got != 12.5 {
		t.Fatalf("expected total 12.5, got %v", got)
	}

	store.UpdateQuantity("d2", 4)
	if got := store.Total(); got != 20 {
		t.Fatalf("expected total 20, got %v", got)
	}

	store.RemoveItem("d1")
	if got := store.Total(); got != 10 {
		t.Fatalf("expected total 10, got %v", got)
	}
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -7} {
		store, _ := newTestStore(t)
		store.AddItem(dish("d1", 5))
		if err := store.UpdateQuantity("d1", q); err != nil {
			t.Fatalf("UpdateQuantity(%d): %v", q, err)
		}
		if len(store.Items()) != 0 {
			t.Fatalf("quantity %d should remove the line", q)
		}
	}
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddItem(dish("d1", 5))
	if err := store.RemoveItem("nope"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(store.Items()) != 1 {
		t.Fatal("unrelated line should survive")
	}
}

func TestClearCartEmptiesStoreAndMirror(t *testing.T) {
	store, local := newTestStore(t)
	store.AddItem(dish("d1", 5))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart")
	}

	var saved []models.CartItem
	if !local.Get(localstore.KeyCart, &saved) {
		t.Fatal("mirror should hold an empty list, not be absent")
	}
	if len(saved) != 0 {
		t.Fatalf("mirror should be empty, got %d lines", len(saved))
	}
}

func TestHydrationRoundTrip(t *testing.T) {
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}

	first := NewStore(local)
	first.AddItem(dish("d1", 5))
	first.AddItem(dish("d1", 5))
	first.AddItem(dish("d2", 3))

	second := NewStore(local)
	items := second.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after rehydration, got %d", len(items))
	}
	if items[0].ID != "d1" || items[0].Quantity != 2 || items[0].Price != 5 {
		t.Fatalf("line mismatch after rehydration: %+v", items[0])
	}
	if second.Total() != first.Total() {
		t.Fatalf("totals differ after rehydration: %v vs %v", second.Total(), first.Total())
	}
}

func TestHydrationIgnoresCorruptMirror(t *testing.T) {
	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	if err := local.Put(localstore.KeyCart, "not an array"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	store := NewStore(local)
	if len(store.Items()) != 0 {
		t.Fatal("corrupt mirror must hydrate as empty cart")
	}
}

func TestFrozenCartRejectsMutations(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddItem(dish("d1", 5))

	if _, err := store.freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}

	if err := store.AddItem(dish("d2", 2)); err != ErrCartLocked {
		t.Fatalf("expected ErrCartLocked, got %v", err)
	}
	if err := store.UpdateQuantity("d1", 4); err != ErrCartLocked {
		t.Fatalf("expected ErrCartLocked, got %v", err)
	}
	if err := store.Clear(); err != ErrCartLocked {
		t.Fatalf("expected ErrCartLocked, got %v", err)
	}

	store.release(false)
	if err := store.AddItem(dish("d2", 2)); err != nil {
		t.Fatalf("AddItem after release: %v", err)
	}
}

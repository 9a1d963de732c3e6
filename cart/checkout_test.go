package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sagra/localstore"
	"sagra/models"
	"sagra/upstream"
)

func checkoutFixture(t *testing.T, backend http.HandlerFunc) (*Checkout, *Store, *localstore.Store) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	store := NewStore(local)
	api := upstream.New(srv.URL, local)
	return NewCheckout(store, api, local), store, local
}

func TestConfirmSuccessClearsCartAndStoresReference(t *testing.T) {
	var received models.OrderSubmission
	backend := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			http.Error(w, "unexpected request", http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{
			ID:     "o1",
			Code:   "A1B2",
			Items:  received.Items,
			Total:  10,
			Status: models.StatusDaPagare,
			Name:   received.Name,
		})
	}

	checkout, store, local := checkoutFixture(t, backend)
	store.AddItem(dish("d1", 5))
	store.AddItem(dish("d1", 5))

	order, err := checkout.Confirm(context.Background(), "Mario")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if order.ID != "o1" || order.Code != "A1B2" {
		t.Fatalf("unexpected order identity: %+v", order)
	}

	if received.Name != "Mario" {
		t.Fatalf("expected submitted name Mario, got %q", received.Name)
	}
	if len(received.Items) != 1 || received.Items[0].ID != "d1" || received.Items[0].Quantity != 2 {
		t.Fatalf("unexpected submitted items: %+v", received.Items)
	}
	if received.IdempotencyKey == "" {
		t.Fatal("submission should carry an idempotency key")
	}

	if len(store.Items()) != 0 {
		t.Fatal("cart should be empty after a successful submission")
	}

	var ref models.LastOrder
	if !local.Get(localstore.KeyLastOrder, &ref) || ref.ID != "o1" {
		t.Fatalf("lastOrder reference not stored: %+v", ref)
	}
}

func TestConfirmFailureLeavesCartUntouched(t *testing.T) {
	backend := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}

	checkout, store, _ := checkoutFixture(t, backend)
	store.AddItem(dish("d1", 5))
	store.UpdateQuantity("d1", 2)

	if _, err := checkout.Confirm(context.Background(), "Mario"); err == nil {
		t.Fatal("expected an error from a failing backend")
	}

	items := store.Items()
	if len(items) != 1 || items[0].ID != "d1" || items[0].Quantity != 2 || items[0].Price != 5 {
		t.Fatalf("cart changed after failed submission: %+v", items)
	}

	// the cart must be editable again after the failure
	if err := store.AddItem(dish("d2", 3)); err != nil {
		t.Fatalf("cart still locked after failed submission: %v", err)
	}
}

func TestConfirmKeepsIdempotencyKeyAcrossRetries(t *testing.T) {
	var keys []string
	fail := true
	backend := func(w http.ResponseWriter, r *http.Request) {
		var sub models.OrderSubmission
		json.NewDecoder(r.Body).Decode(&sub)
		keys = append(keys, sub.IdempotencyKey)
		if fail {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Order{ID: "o1", Code: "A1B2"})
	}

	checkout, store, _ := checkoutFixture(t, backend)
	store.AddItem(dish("d1", 5))

	if _, err := checkout.Confirm(context.Background(), "Mario"); err == nil {
		t.Fatal("expected first attempt to fail")
	}
	fail = false
	if _, err := checkout.Confirm(context.Background(), "Mario"); err != nil {
		t.Fatalf("retry: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(keys))
	}
	if keys[0] == "" || keys[0] != keys[1] {
		t.Fatalf("retry should reuse the idempotency key: %q vs %q", keys[0], keys[1])
	}

	// a fresh confirmation mints a fresh key
	store.AddItem(dish("d2", 3))
	if _, err := checkout.Confirm(context.Background(), "Luigi"); err != nil {
		t.Fatalf("new confirmation: %v", err)
	}
	if keys[2] == keys[0] {
		t.Fatal("a new confirmation must not reuse the old key")
	}
}

func TestConfirmValidation(t *testing.T) {
	backend := func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	}

	checkout, store, _ := checkoutFixture(t, backend)

	if _, err := checkout.Confirm(context.Background(), "Mario"); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	store.AddItem(dish("d1", 5))
	if _, err := checkout.Confirm(context.Background(), "   "); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

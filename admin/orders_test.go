package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sagra/localstore"
	"sagra/models"
	"sagra/upstream"
)

func viewFixture(t *testing.T, backend http.HandlerFunc) *OrderView {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	return NewOrderView(upstream.New(srv.URL, local), local)
}

func sampleOrder(id string, status models.OrderStatus) models.Order {
	return models.Order{
		ID:        id,
		Code:      "C-" + id,
		Status:    status,
		Items:     []models.CartItem{{ID: "d1", Name: "Porchetta", Price: 8, Quantity: 1}},
		Total:     8,
		CreatedAt: time.Date(2025, 9, 12, 19, 30, 0, 0, time.UTC),
	}
}

func TestUpdateStatusIsOptimistic(t *testing.T) {
	view := viewFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})
	view.apply(view.nextSeq.Add(1), []models.Order{sampleOrder("o1", models.StatusDaPagare)})

	err := view.UpdateStatus(context.Background(), "o1", models.StatusPagato)
	if err == nil {
		t.Fatal("expected the upstream failure to be reported")
	}

	// the local list shows the new status even though the call failed
	orders := view.Orders()
	if len(orders) != 1 || orders[0].Status != models.StatusPagato {
		t.Fatalf("expected optimistic pagato, got %+v", orders)
	}
	if orders[0].UpdatedAt.IsZero() {
		t.Fatal("updatedAt should be refreshed by the transition")
	}
}

func TestUpdateStatusUnknownOrderStillCallsUpstream(t *testing.T) {
	var called bool
	view := viewFixture(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	if err := view.UpdateStatus(context.Background(), "ghost", models.StatusAnnullato); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !called {
		t.Fatal("transition for an id missing locally must still reach upstream")
	}
}

func TestApplyDropsStaleResponses(t *testing.T) {
	view := viewFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	// two fetches start; the older one resolves last
	oldSeq := view.nextSeq.Add(1)
	newSeq := view.nextSeq.Add(1)

	fresh := []models.Order{sampleOrder("o2", models.StatusPagato)}
	stale := []models.Order{sampleOrder("o1", models.StatusDaPagare)}

	if !view.apply(newSeq, fresh) {
		t.Fatal("newer result should be installed")
	}
	if view.apply(oldSeq, stale) {
		t.Fatal("stale result must be discarded")
	}

	orders := view.Orders()
	if len(orders) != 1 || orders[0].ID != "o2" {
		t.Fatalf("stale fetch overwrote fresher state: %+v", orders)
	}
}

func TestRefreshInstallsAndPersists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"o1","code":"C-o1","status":"da pagare","total":8}]`))
	}))
	t.Cleanup(srv.Close)

	local, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	view := NewOrderView(upstream.New(srv.URL, local), local)

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if orders := view.Orders(); len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("unexpected view after refresh: %+v", orders)
	}

	// a new view over the same state dir starts from the snapshot
	rehydrated := NewOrderView(upstream.New(srv.URL, local), local)
	if orders := rehydrated.Orders(); len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("snapshot did not rehydrate: %+v", orders)
	}
}

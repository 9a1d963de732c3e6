package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"sagra/localstore"
	"sagra/models"
	"sagra/rdx"
	"sagra/upstream"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
)

// OrderView is the admin's in-memory order list. Status transitions are
// applied optimistically before the PATCH resolves and are not rolled
// back on failure; the periodic refetch is the reconciliation mechanism.
type OrderView struct {
	api   *upstream.Client
	local *localstore.Store

	mu      sync.Mutex
	orders  []models.Order
	applied uint64

	nextSeq atomic.Uint64
}

func NewOrderView(api *upstream.Client, local *localstore.Store) *OrderView {
	v := &OrderView{api: api, local: local}
	// start from the last snapshot so the view is not blank before the
	// first poll completes
	if cached, ok := rdx.CachedOrders(); ok {
		v.orders = cached
		return v
	}
	var saved []models.Order
	if local.Get(localstore.KeyOrders, &saved) {
		v.orders = saved
	}
	return v
}

// Orders returns a copy of the current view.
func (v *OrderView) Orders() []models.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Order, len(v.orders))
	copy(out, v.orders)
	return out
}

// apply installs a fetch result unless a newer fetch already landed.
func (v *OrderView) apply(seq uint64, orders []models.Order) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.applied {
		return false
	}
	v.applied = seq
	v.orders = orders
	return true
}

// Refresh performs one full refetch. Sequence numbers are taken at
// request start, so a slow response that resolves after a newer one
// cannot overwrite fresher state.
func (v *OrderView) Refresh(ctx context.Context) error {
	seq := v.nextSeq.Add(1)
	orders, err := v.api.ListOrders(ctx)
	if err != nil {
		return err
	}
	if !v.apply(seq, orders) {
		return nil
	}
	rdx.CacheOrders(orders)
	if err := v.local.Put(localstore.KeyOrders, orders); err != nil {
		log.Println("orders snapshot persist error:", err)
	}
	return nil
}

// UpdateStatus rewrites the matching order locally with the new status
// and a fresh updatedAt, then issues the transition upstream. A request
// failure is returned for display but the optimistic state stands until
// the next poll.
func (v *OrderView) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	v.mu.Lock()
	for i := range v.orders {
		if v.orders[i].ID == id {
			v.orders[i].Status = status
			v.orders[i].UpdatedAt = time.Now()
			break
		}
	}
	v.mu.Unlock()

	return v.api.UpdateOrderStatus(ctx, id, status)
}

type OrderHandlers struct {
	View *OrderView
	api  *upstream.Client
}

func NewOrderHandlers(view *OrderView, api *upstream.Client) *OrderHandlers {
	return &OrderHandlers{View: view, api: api}
}

func orderDay(o models.Order) string {
	return o.CreatedAt.Format("2006-01-02")
}

func itemCount(o models.Order) int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// ListOrders serves the filtered, sorted view. Filters: status tab,
// explicit date set (comma separated) or start/end range. Sort fields:
// createdAt (default), total, items.
func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	orders := h.View.Orders()

	if status := q.Get("status"); status != "" && status != "all" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == models.OrderStatus(status) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	if dates := q.Get("dates"); dates != "" {
		wanted := map[string]bool{}
		for _, d := range strings.Split(dates, ",") {
			wanted[strings.TrimSpace(d)] = true
		}
		filtered := orders[:0]
		for _, o := range orders {
			if wanted[orderDay(o)] {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	} else if start, end := q.Get("start"), q.Get("end"); start != "" || end != "" {
		filtered := orders[:0]
		for _, o := range orders {
			day := orderDay(o)
			if (start == "" || day >= start) && (end == "" || day <= end) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	sortField := q.Get("sort")
	desc := q.Get("order") != "asc"
	sort.SliceStable(orders, func(i, j int) bool {
		var less bool
		switch sortField {
		case "total":
			less = orders[i].Total < orders[j].Total
		case "items":
			less = itemCount(orders[i]) < itemCount(orders[j])
		default:
			less = orders[i].CreatedAt.Before(orders[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus applies the optimistic transition.
func (h *OrderHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	id := ps.ByName("id")
	if err := h.View.UpdateStatus(r.Context(), id, body.Status); err != nil {
		log.Println("UpdateOrderStatus upstream error:", err)
		// local view keeps the optimistic state; report the failure
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile aggiornare l'ordine. Riprova.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status": "updated",
		"label":  models.OrderStatusLabels[body.Status],
	})
}

// PrintOrder forwards the order to the kitchen printer.
func (h *OrderHandlers) PrintOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.api.PrintOrder(r.Context(), ps.ByName("id")); err != nil {
		log.Println("PrintOrder upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile stampare l'ordine. Riprova.")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "printed"})
}

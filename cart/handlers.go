package cart

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sagra/localstore"
	"sagra/menu"
	"sagra/models"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Store    *Store
	Checkout *Checkout
	Catalog  *menu.Catalog
	Local    *localstore.Store
}

func NewHandlers(store *Store, checkout *Checkout, catalog *menu.Catalog, local *localstore.Store) *Handlers {
	return &Handlers{Store: store, Checkout: checkout, Catalog: catalog, Local: local}
}

func (h *Handlers) respondCart(w http.ResponseWriter, code int) {
	utils.RespondWithJSON(w, code, utils.M{
		"items": h.Store.Items(),
		"total": h.Store.Total(),
	})
}

// GetCart returns the current line list and its freshly computed total.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.respondCart(w, http.StatusOK)
}

// AddToCart adds one unit of a dish. The dish must exist in the catalog
// and be orderable today; the store itself does not re-check this.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	dish, found, err := h.Catalog.Dish(r.Context(), body.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load the menu")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Dish not found")
		return
	}
	if !menu.Orderable(dish, menu.Today()) {
		utils.RespondWithError(w, http.StatusConflict, "Non Disponibile")
		return
	}

	if err := h.Store.AddItem(dish); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	h.respondCart(w, http.StatusCreated)
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.Store.UpdateQuantity(ps.ByName("id"), body.Quantity); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	h.respondCart(w, http.StatusOK)
}

// RemoveItem deletes a line; an absent id is not an error.
func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.Store.RemoveItem(ps.ByName("id")); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	h.respondCart(w, http.StatusOK)
}

// ClearCart empties the whole cart.
func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.Store.Clear(); err != nil {
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	}
	h.respondCart(w, http.StatusOK)
}

// PlaceOrder confirms the order with the customer's name.
func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	order, err := h.Checkout.Confirm(r.Context(), body.Name)
	switch {
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrEmptyCart):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrCartLocked):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Println("PlaceOrder upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile confermare l'ordine. Riprova.")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// LastOrder returns the footer reference of the most recent submission.
func (h *Handlers) LastOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ref models.LastOrder
	if !h.Local.Get(localstore.KeyLastOrder, &ref) || ref.ID == "" {
		utils.RespondWithError(w, http.StatusNotFound, "No previous order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ref)
}

package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"sagra/menu"
	"sagra/models"
	"sagra/upstream"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
)

type DishHandlers struct {
	api     *upstream.Client
	catalog *menu.Catalog
}

func NewDishHandlers(api *upstream.Client, catalog *menu.Catalog) *DishHandlers {
	return &DishHandlers{api: api, catalog: catalog}
}

// ListDishes serves the admin dish table: every dish including switched
// off ones, with search/category filtering and pagination.
func (h *DishHandlers) ListDishes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dishes, err := h.catalog.Dishes(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load dishes")
		return
	}

	opts := utils.ParseQueryOptions(r)
	filtered := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		if opts.Category != "" && d.Category != opts.Category {
			continue
		}
		if opts.Search != "" && !utils.ContainsIgnoreCase(d.Name, opts.Search) {
			continue
		}
		filtered = append(filtered, d)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })

	total := len(filtered)
	start, end := opts.Paginate(total)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"dishes": filtered[start:end],
		"total":  total,
		"page":   opts.Page,
		"limit":  opts.Limit,
	})
}

func decodeDish(w http.ResponseWriter, r *http.Request) (models.Dish, bool) {
	var dish models.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return models.Dish{}, false
	}
	if errs := models.ValidateDish(&dish); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"errors": errs})
		return models.Dish{}, false
	}
	// keep the legacy single-date field aligned to the first date
	if len(dish.AvailableDates) > 0 {
		sort.Strings(dish.AvailableDates)
		dish.AvailableOn = dish.AvailableDates[0]
	} else {
		dish.AvailableOn = ""
	}
	return dish, true
}

// CreateDish validates locally, then creates the dish upstream. Nothing
// is sent while validation fails.
func (h *DishHandlers) CreateDish(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dish, ok := decodeDish(w, r)
	if !ok {
		return
	}

	created, err := h.api.CreateDish(r.Context(), dish)
	if err != nil {
		log.Println("CreateDish upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile aggiungere il piatto. Riprova.")
		return
	}
	h.refreshSnapshot(r)
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// UpdateDish validates locally, then replaces the dish upstream.
func (h *DishHandlers) UpdateDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dish, ok := decodeDish(w, r)
	if !ok {
		return
	}
	dish.ID = ps.ByName("id")

	updated, err := h.api.UpdateDish(r.Context(), dish)
	if err != nil {
		log.Println("UpdateDish upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile aggiornare il piatto. Riprova.")
		return
	}
	h.refreshSnapshot(r)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *DishHandlers) DeleteDish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.api.DeleteDish(r.Context(), ps.ByName("id")); err != nil {
		log.Println("DeleteDish upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Non è stato possibile eliminare il piatto. Riprova.")
		return
	}
	h.refreshSnapshot(r)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// refreshSnapshot refetches the catalog so the storefront sees the
// mutation without waiting for its next request.
func (h *DishHandlers) refreshSnapshot(r *http.Request) {
	if _, err := h.catalog.Dishes(r.Context()); err != nil {
		log.Println("catalog refresh error:", err)
	}
}

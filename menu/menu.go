// Package menu is the storefront read side: dish listing with
// availability annotation, category table and the downloadable menu PDF.
package menu

import (
	"net/http"
	"sort"

	"sagra/models"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Catalog *Catalog
}

func NewHandlers(catalog *Catalog) *Handlers {
	return &Handlers{Catalog: catalog}
}

// GetMenu lists dishes annotated for today, with category/search
// filtering, sorting and pagination applied to the fetched list.
func (h *Handlers) GetMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dishes, err := h.Catalog.Dishes(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load the menu")
		return
	}

	opts := utils.ParseQueryOptions(r)
	today := Today()

	views := make([]DishView, 0, len(dishes))
	for _, d := range dishes {
		if opts.Category != "" && d.Category != opts.Category {
			continue
		}
		if opts.Search != "" && !utils.ContainsIgnoreCase(d.Name, opts.Search) &&
			!utils.ContainsIgnoreCase(d.Description, opts.Search) {
			continue
		}
		views = append(views, Annotate(d, today))
	}

	sort.SliceStable(views, func(i, j int) bool {
		var less bool
		switch opts.Sort {
		case "price":
			less = views[i].Price < views[j].Price
		default:
			less = views[i].Name < views[j].Name
		}
		if opts.Desc {
			return !less
		}
		return less
	})

	total := len(views)
	start, end := opts.Paginate(total)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"dishes": views[start:end],
		"total":  total,
		"page":   opts.Page,
		"limit":  opts.Limit,
	})
}

// GetCategories returns the fixed festival category table.
func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, models.DishCategories)
}

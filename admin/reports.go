package admin

import (
	"net/http"
	"sort"

	"sagra/menu"
	"sagra/models"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
)

// ReportEntry is one order's contribution to a dish's daily line.
type ReportEntry struct {
	OrderID  string             `json:"orderId"`
	Code     string             `json:"code"`
	Name     string             `json:"name"`
	Quantity int                `json:"qty"`
	Time     string             `json:"time"`
	Status   models.OrderStatus `json:"status"`
}

// DishReport aggregates one dish over one day.
type DishReport struct {
	DishID   string        `json:"dishId"`
	DishName string        `json:"dishName"`
	Quantity int           `json:"qty"`
	Revenue  float64       `json:"revenue"`
	Entries  []ReportEntry `json:"entries"`
}

// DailyReport aggregates quantity and revenue per dish for one calendar
// day. Cancelled orders do not count.
func DailyReport(orders []models.Order, date string) []DishReport {
	byDish := map[string]*DishReport{}
	var ids []string

	for _, order := range orders {
		if orderDay(order) != date {
			continue
		}
		if order.Status == models.StatusAnnullato {
			continue
		}
		for _, item := range order.Items {
			rep, ok := byDish[item.ID]
			if !ok {
				rep = &DishReport{DishID: item.ID, DishName: item.Name}
				byDish[item.ID] = rep
				ids = append(ids, item.ID)
			}
			rep.Quantity += item.Quantity
			rep.Revenue += item.Price * float64(item.Quantity)
			rep.Entries = append(rep.Entries, ReportEntry{
				OrderID:  order.ID,
				Code:     order.Code,
				Name:     order.Name,
				Quantity: item.Quantity,
				Time:     order.CreatedAt.Format("15:04"),
				Status:   order.Status,
			})
		}
	}

	out := make([]DishReport, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byDish[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	return out
}

type ReportHandlers struct {
	View *OrderView
}

func NewReportHandlers(view *OrderView) *ReportHandlers {
	return &ReportHandlers{View: view}
}

// Daily serves the per-dish report for ?date= (default: today).
func (h *ReportHandlers) Daily(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = menu.Today()
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":   date,
		"dishes": DailyReport(h.View.Orders(), date),
	})
}

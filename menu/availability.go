package menu

import (
	"sort"
	"time"

	"sagra/models"
)

// Calendar dates are compared as YYYY-MM-DD strings. The form is
// zero-padded and big-endian, so lexicographic order is date order; no
// locale-dependent parsing is involved in any comparison.

// Today returns the current calendar date in the storefront's form.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Orderable reports whether the dish can be ordered on the given day.
// The admin switch always wins; an empty date set means every day.
func Orderable(d models.Dish, today string) bool {
	if !d.Available {
		return false
	}
	if len(d.AvailableDates) == 0 {
		return true
	}
	for _, date := range d.AvailableDates {
		if date == today {
			return true
		}
	}
	return false
}

// DisplayDate picks the date shown next to a dish: the earliest date not
// before today, or the latest past date when none remain. Empty input
// yields "".
func DisplayDate(dates []string, today string) string {
	if len(dates) == 0 {
		return ""
	}
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)

	for _, date := range sorted {
		if date >= today {
			return date
		}
	}
	return sorted[len(sorted)-1]
}

var monthNames = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// DateLabel renders a display date relative to today: "oggi", "domani"
// or a day/month label such as "12 settembre". Unparseable input is
// returned as-is.
func DateLabel(date, today string) string {
	if date == today {
		return "oggi"
	}
	t, err := time.Parse("2006-01-02", today)
	if err == nil && date == t.AddDate(0, 0, 1).Format("2006-01-02") {
		return "domani"
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("2") + " " + monthNames[d.Month()-1]
}

// DishView is a dish annotated with the availability the storefront
// renders.
type DishView struct {
	models.Dish
	Orderable         bool   `json:"orderable"`
	AvailabilityDate  string `json:"availabilityDate,omitempty"`
	AvailabilityLabel string `json:"availabilityLabel,omitempty"`
}

// Annotate computes the availability view of a dish for the given day.
func Annotate(d models.Dish, today string) DishView {
	view := DishView{Dish: d, Orderable: Orderable(d, today)}
	if date := DisplayDate(d.AvailableDates, today); date != "" {
		view.AvailabilityDate = date
		view.AvailabilityLabel = DateLabel(date, today)
	}
	return view
}

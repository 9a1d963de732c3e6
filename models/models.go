package models

import (
	"time"
)

// Dish is a catalog entry owned by the upstream API. The storefront only
// reads it; all writes go through the admin endpoints.
type Dish struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Available   bool     `json:"available"`
	// AvailableOn mirrors the first entry of AvailableDates for older
	// clients that still read the single-date field.
	AvailableOn    string   `json:"availableOn,omitempty"`
	AvailableDates []string `json:"availableDates,omitempty"`
}

// CartItem is one line of the pending order. Price and name are captured
// at add time, not looked up again.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

type OrderStatus string

const (
	StatusDaPagare  OrderStatus = "da pagare"
	StatusPagato    OrderStatus = "pagato"
	StatusAnnullato OrderStatus = "annullato"
)

var OrderStatusLabels = map[OrderStatus]string{
	StatusDaPagare:  "Da Pagare",
	StatusPagato:    "Pagato",
	StatusAnnullato: "Annullato",
}

// ValidStatus reports whether s is one of the three known order states.
func ValidStatus(s OrderStatus) bool {
	_, ok := OrderStatusLabels[s]
	return ok
}

// Order is the server-side aggregate for a submitted cart. The client
// never owns it; it submits, reads and requests transitions.
type Order struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Items     []CartItem  `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderSubmission is the payload for creating an order. The id, code,
// total, status and timestamps are assigned upstream.
type OrderSubmission struct {
	Items          []CartItem `json:"items"`
	Name           string     `json:"name"`
	IdempotencyKey string     `json:"idempotencyKey,omitempty"`
}

// LastOrder is the footer/receipt convenience reference kept after a
// successful submission.
type LastOrder struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Image string `json:"image"`
}

// DishCategories is the fixed category table of the festival menu.
var DishCategories = []Category{
	{Value: "sfizi", Label: "Sfizi", Image: "sfizi.webp"},
	{Value: "primi", Label: "Primi Piatti e Antichi Sapori", Image: "primi.webp"},
	{Value: "pizze fritte", Label: "Pizze Fritte", Image: "Pizza Fritta.webp"},
	{Value: "porchetta", Label: "Porchetta", Image: "Porchetta.webp"},
	{Value: "arrosti", Label: "Arrosti", Image: "Arrosto di maiale.webp"},
	{Value: "frutta e dolci", Label: "Frutta e Dolci", Image: "Anguria.webp"},
	{Value: "bibite", Label: "Bibite", Image: "Coca Cola.webp"},
	{Value: "vini (bottiglia)", Label: "Vini (bottiglia)", Image: "vino.webp"},
	{Value: "birre", Label: "Birre", Image: "birra.webp"},
}

// ValidCategory reports whether value is a known category code.
func ValidCategory(value string) bool {
	for _, c := range DishCategories {
		if c.Value == value {
			return true
		}
	}
	return false
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// FieldErrors maps a form field to its validation message. Validation
// happens before any upstream call; nothing is sent while it fails.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// ValidateDish applies the admin dish-form rules and returns per-field
// messages, or nil when the dish is acceptable.
func ValidateDish(d *Dish) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Il nome è obbligatorio"
	}
	if d.Price <= 0 {
		errs["price"] = "Il prezzo deve essere maggiore di zero"
	}
	if strings.TrimSpace(d.Image) == "" {
		errs["image"] = "L'URL dell'immagine è obbligatorio"
	}
	if d.Category != "" && !ValidCategory(d.Category) {
		errs["category"] = "Categoria sconosciuta: " + d.Category
	}
	for _, date := range d.AvailableDates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			errs["availableDates"] = fmt.Sprintf("Data non valida: %s", date)
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

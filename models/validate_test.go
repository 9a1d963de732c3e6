package models

import "testing"

func validDish() Dish {
	return Dish{
		Name:           "Porchetta",
		Price:          8,
		Category:       "porchetta",
		Image:          "porchetta.webp",
		Available:      true,
		AvailableDates: []string{"2025-09-12"},
	}
}

func TestValidateDishAccepts(t *testing.T) {
	d := validDish()
	if errs := ValidateDish(&d); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateDishRequiredFields(t *testing.T) {
	d := validDish()
	d.Name = "   "
	d.Price = 0
	d.Image = ""

	errs := ValidateDish(&d)
	if errs["name"] != "Il nome è obbligatorio" {
		t.Errorf("name: %q", errs["name"])
	}
	if errs["price"] != "Il prezzo deve essere maggiore di zero" {
		t.Errorf("price: %q", errs["price"])
	}
	if errs["image"] != "L'URL dell'immagine è obbligatorio" {
		t.Errorf("image: %q", errs["image"])
	}
}

func TestValidateDishNegativePrice(t *testing.T) {
	d := validDish()
	d.Price = -2
	if errs := ValidateDish(&d); errs["price"] == "" {
		t.Fatal("negative price should be rejected")
	}
}

func TestValidateDishBadDate(t *testing.T) {
	d := validDish()
	d.AvailableDates = []string{"2025-09-12", "12/09/2025"}
	errs := ValidateDish(&d)
	if errs["availableDates"] == "" {
		t.Fatal("malformed date should be rejected")
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []OrderStatus{StatusDaPagare, StatusPagato, StatusAnnullato} {
		if !ValidStatus(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if ValidStatus("spedito") {
		t.Error("unknown status accepted")
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory("vini (bottiglia)") {
		t.Error("known category rejected")
	}
	if ValidCategory("dessert") {
		t.Error("unknown category accepted")
	}
}

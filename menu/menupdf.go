package menu

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"sagra/models"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// BuildMenuPDF renders the full menu on A4, one section per category,
// skipping dishes the admin has switched off.
func BuildMenuPDF(dishes []models.Dish) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Sagra degli Antichi Sapori", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "Menu", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	dateStr := time.Now().Format("02/01/2006")
	pdf.CellFormat(0, 6, "Aggiornato al "+dateStr, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	for _, cat := range models.DishCategories {
		var inCategory []models.Dish
		for _, d := range dishes {
			if d.Category == cat.Value && d.Available {
				inCategory = append(inCategory, d)
			}
		}
		if len(inCategory) == 0 {
			continue
		}

		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, tr(cat.Label), "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "", 11)
		for _, d := range inCategory {
			pdf.CellFormat(140, 7, tr(d.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, fmt.Sprintf("EUR %.2f", d.Price), "", 1, "R", false, 0, "")
			if d.Description != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.CellFormat(0, 5, tr(d.Description), "", 1, "L", false, 0, "")
				pdf.SetFont("Arial", "", 11)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MenuPDF serves the menu as a downloadable PDF.
func (h *Handlers) MenuPDF(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dishes, err := h.Catalog.Dishes(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load the menu")
		return
	}

	out, err := BuildMenuPDF(dishes)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=menu-sagra.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

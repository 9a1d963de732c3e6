// Package receipt serves the digital receipt for a submitted order,
// including a printable PDF carrying the order code as a QR.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"sagra/models"
	"sagra/upstream"
	"sagra/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

type Handlers struct {
	api *upstream.Client
}

func NewHandlers(api *upstream.Client) *Handlers {
	return &Handlers{api: api}
}

// GetReceipt looks an order up by id. The backend answers unknown ids
// with an empty object; that becomes a plain 404 here, never a crash.
func (h *Handlers) GetReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, err := h.api.GetOrder(r.Context(), ps.ByName("id"))
	if errors.Is(err, upstream.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Ordine non trovato")
		return
	}
	if err != nil {
		log.Println("GetReceipt upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load the order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// BuildReceiptPDF renders the digital receipt: order code, customer
// name, line items, total, and the code as a QR to show at the counter.
func BuildReceiptPDF(order models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(order.Code, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 12, "Scontrino Digitale", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, "Sagra Antichi Sapori", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Codice Ordine", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "#"+order.Code, "1", 1, "C", false, 0, "")

	if order.Name != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, tr(order.Name), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Data e Ora: "+order.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(110, 7, "Prodotto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr("Quantità"), "B", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Totale", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(110, 6, tr(item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("EUR %.2f", item.Price*float64(item.Quantity)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(110, 8, "Totale", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("EUR %.2f", order.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 85, pdf.GetY(), 40, 40, false, imageOpts, 0, "")
	pdf.SetY(pdf.GetY() + 44)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Mostra questo codice alla cassa per il pagamento", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReceiptPDF serves the receipt as a downloadable PDF.
func (h *Handlers) ReceiptPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, err := h.api.GetOrder(r.Context(), ps.ByName("id"))
	if errors.Is(err, upstream.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Ordine non trovato")
		return
	}
	if err != nil {
		log.Println("ReceiptPDF upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Could not load the order")
		return
	}

	out, err := BuildReceiptPDF(order)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=scontrino-"+order.Code+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

package services

import (
	"bytes"
	"fmt"
	"strings"

	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/store"
	"envy/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking documents as PDF.
type DocsService struct {
	Store     *store.Store
	RequestID string
	Loader    func(id string) (models.Booking, error)
}

// GenerateConfirmation returns the reservation confirmation for a booking and its file name.
func (s DocsService) GenerateConfirmation(bookingID string) ([]byte, string, error) {
	b, err := s.loadBooking(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", "booking_id="+b.ID)
	return buildConfirmationPDF(b, domain.ComputeCheckout(b.TotalCost))
}

func (s DocsService) loadBooking(id string) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	if s.Store == nil {
		return models.Booking{}, domain.InternalError{Msg: "docs service has no store"}
	}
	b, ok := s.Store.Booking(id)
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id}
	}
	return b, nil
}

func buildConfirmationPDF(b models.Booking, q domain.CheckoutQuote) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Reservation Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "ENVY")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Reservation "+statusLabel(b.Status))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, tr(safe(b.PropertyTitle, "-")), "", "", false)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Reference   : %s", safe(b.ID, "-")),
		fmt.Sprintf("Check-in    : %s", safe(dateOnly(b.CheckIn), "-")),
		fmt.Sprintf("Check-out   : %s", safe(dateOnly(b.CheckOut), "-")),
		fmt.Sprintf("Nights      : %d", b.Nights),
		fmt.Sprintf("Guest       : %s", safe(b.ClientDetails.Name, "-")),
		fmt.Sprintf("Email       : %s", safe(b.ClientDetails.Email, "-")),
		fmt.Sprintf("Phone       : %s", safe(b.ClientDetails.Phone, "-")),
		fmt.Sprintf("Booked on   : %s", safe(dateOnly(b.CreatedAt), "-")),
		fmt.Sprintf("Issued      : %s", utils.FormatDate(utils.NowUTC())),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	charges := [][2]string{
		{fmt.Sprintf("Accommodation (%d nights)", b.Nights), utils.FormatZAR(q.Subtotal)},
		{"Service fee (5%)", utils.FormatZAR(q.ServiceFee)},
		{"Tourism levy & VAT (15%)", utils.FormatZAR(q.LevyVAT)},
	}
	for _, c := range charges {
		pdf.CellFormat(120, 7, tr(c[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(c[1]), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, tr(utils.FormatZAR(q.GrandTotal)), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "All amounts in South African Rand. Present this confirmation on arrival.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ENVY_%s_%s.pdf", safeFilenamePart(b.ID), safeFilenamePart(b.ClientDetails.Name))
	return buf.Bytes(), filename, nil
}

func statusLabel(s models.BookingStatus) string {
	switch s {
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusCancelled:
		return "Cancelled"
	default:
		return "Pending Payment"
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

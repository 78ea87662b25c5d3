package handlers

import (
	"net/http"

	"envy/internal/domain"
	"envy/internal/http/middleware"
	"envy/internal/services"
	"envy/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, err := h.bookings(c).Reserve(services.ReserveInput{
		PropertyID: req.PropertyID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Client:     req.ClientDetails,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "formattedTotal": utils.FormatZAR(b.TotalCost)})
}

// GET /api/bookings/current
func (h *Handler) GetCurrentBooking(c *gin.Context) {
	cur := h.Store.CurrentBooking()
	if cur == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "current booking"})
		return
	}
	respondOK(c, gin.H{"booking": cur})
}

// DELETE /api/bookings/current
func (h *Handler) ClearCurrentBooking(c *gin.Context) {
	h.Store.SetCurrentBooking(nil)
	utils.LogEvent(middleware.GetRequestID(c), "booking", "clear_current", "")
	respondOK(c, gin.H{"ok": true})
}

// GET /api/bookings/:id/confirmation.pdf
func (h *Handler) BookingConfirmationPDF(c *gin.Context) {
	pdfBytes, filename, err := h.docs(c).GenerateConfirmation(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/admin/bookings
func (h *Handler) ListBookings(c *gin.Context) {
	bookings := h.Store.Bookings()
	respondOK(c, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GET /api/admin/bookings/stats
func (h *Handler) BookingStats(c *gin.Context) {
	respondOK(c, h.bookings(c).Stats())
}

// PUT /api/admin/bookings/:id/status
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	b, found, err := h.bookings(c).SetStatus(c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !found {
		matched(c, false, nil)
		return
	}
	matched(c, true, gin.H{"booking": b})
}

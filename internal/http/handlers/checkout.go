package handlers

import (
	"strings"

	"envy/internal/domain"
	"envy/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/checkout
func (h *Handler) Checkout(c *gin.Context) {
	cur := h.Store.CurrentBooking()
	if cur == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "current booking"})
		return
	}
	svc := h.payments(c)
	quote := svc.Checkout(*cur)
	respondOK(c, gin.H{
		"booking": cur,
		"quote":   quote,
		"formatted": gin.H{
			"subtotal":   utils.FormatZAR(quote.Subtotal),
			"serviceFee": utils.FormatZAR(quote.ServiceFee),
			"levyVat":    utils.FormatZAR(quote.LevyVAT),
			"grandTotal": utils.FormatZAR(quote.GrandTotal),
		},
		"gateway": svc.BuildForm(*cur, ""),
		"sandbox": h.Store.GatewayConfig().Sandbox,
	})
}

// POST /api/payments/return?payment=success|cancelled
func (h *Handler) PaymentReturn(c *gin.Context) {
	status := strings.TrimSpace(c.Query("payment"))
	b, confirmed := h.payments(c).HandleReturn(status)
	if b.ID == "" {
		respondOK(c, gin.H{"payment": status, "confirmed": false, "booking": nil})
		return
	}
	respondOK(c, gin.H{"payment": status, "confirmed": confirmed, "booking": b})
}

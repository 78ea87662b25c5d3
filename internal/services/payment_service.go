package services

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/store"
	"envy/internal/utils"
)

const (
	PayFastSandboxURL = "https://sandbox.payfast.co.za/eng/process"
	PayFastLiveURL    = "https://www.payfast.co.za/eng/process"

	// public sandbox test merchant
	sandboxMerchantID  = "10000100"
	sandboxMerchantKey = "46f0cd694581a"
)

// FormField is one hidden input of the hosted payment form. Order matters for the signature.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PaymentForm is posted by the browser to the gateway.
type PaymentForm struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []FormField `json:"fields"`
}

// Value returns the named field, or "".
func (f PaymentForm) Value(name string) string {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// PaymentService hands a booking over to the hosted gateway and applies the return redirect.
type PaymentService struct {
	Store     *store.Store
	BaseURL   string
	RequestID string
}

func (s PaymentService) Checkout(b models.Booking) domain.CheckoutQuote {
	return domain.ComputeCheckout(b.TotalCost)
}

// Configured reports whether real merchant credentials are set.
func (s PaymentService) Configured() bool {
	cfg := s.Store.GatewayConfig()
	return strings.TrimSpace(cfg.MerchantID) != "" && strings.TrimSpace(cfg.MerchantKey) != ""
}

// BuildForm renders the gateway form for b. baseURL overrides the service default when set.
func (s PaymentService) BuildForm(b models.Booking, baseURL string) PaymentForm {
	if baseURL == "" {
		baseURL = s.BaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	cfg := s.Store.GatewayConfig()
	merchantID, merchantKey := strings.TrimSpace(cfg.MerchantID), strings.TrimSpace(cfg.MerchantKey)
	if merchantID == "" || merchantKey == "" {
		merchantID, merchantKey = sandboxMerchantID, sandboxMerchantKey
	}
	action := PayFastSandboxURL
	if !cfg.Sandbox {
		action = PayFastLiveURL
	}

	first, last := utils.SplitName(b.ClientDetails.Name)
	quote := s.Checkout(b)
	fields := []FormField{
		{"merchant_id", merchantID},
		{"merchant_key", merchantKey},
		{"return_url", baseURL + "/booking-confirmed?payment=success"},
		{"cancel_url", baseURL + "/checkout?payment=cancelled"},
		{"notify_url", baseURL + "/api/payfast-notify"},
		{"name_first", first},
		{"name_last", last},
		{"email_address", b.ClientDetails.Email},
		{"cell_number", b.ClientDetails.Phone},
		{"amount", utils.FormatAmount(quote.GrandTotal)},
		{"item_name", fmt.Sprintf("ENVY — %s (%d nights)", b.PropertyTitle, b.Nights)},
		{"item_description", fmt.Sprintf("Luxury estate reservation: %s to %s", b.CheckIn, b.CheckOut)},
	}
	if cfg.Passphrase != "" {
		fields = append(fields, FormField{"signature", Signature(fields, cfg.Passphrase)})
	}

	utils.LogEvent(s.RequestID, "payment", "build_form", "booking_id="+b.ID+" amount="+utils.FormatAmount(quote.GrandTotal))
	return PaymentForm{Action: action, Method: "POST", Fields: fields}
}

// Signature is the gateway's MD5 over the non-empty fields, url-encoded in order,
// with the passphrase appended when set.
func Signature(fields []FormField, passphrase string) string {
	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		v := strings.TrimSpace(f.Value)
		if v == "" || f.Name == "signature" {
			continue
		}
		parts = append(parts, f.Name+"="+url.QueryEscape(v))
	}
	if passphrase != "" {
		parts = append(parts, "passphrase="+url.QueryEscape(strings.TrimSpace(passphrase)))
	}
	sum := md5.Sum([]byte(strings.Join(parts, "&")))
	return hex.EncodeToString(sum[:])
}

var errNotPending = errors.New("latest booking is not pending")

// HandleReturn applies the gateway redirect. A "success" status confirms the most recent
// booking when it is still pending; anything else leaves the store alone.
// The redirect is not verified against the gateway.
func (s PaymentService) HandleReturn(paymentStatus string) (models.Booking, bool) {
	if strings.TrimSpace(paymentStatus) != "success" {
		latest, _ := s.Store.LatestBooking()
		return latest, false
	}
	confirmed, found, err := s.Store.TransitionLatestBooking(models.StatusConfirmed, func(latest models.Booking) error {
		if latest.Status != models.StatusPending {
			return errNotPending
		}
		return nil
	})
	if !found || err != nil {
		return confirmed, false
	}
	utils.LogEvent(s.RequestID, "payment", "return", "confirmed booking_id="+confirmed.ID)
	return confirmed, true
}

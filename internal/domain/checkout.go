package domain

import "math"

const (
	ServiceFeeRate = 0.05
	LevyVATRate    = 0.15
)

// CheckoutQuote itemises what the guest is charged at the payment step.
type CheckoutQuote struct {
	Subtotal   int64 `json:"subtotal"`
	ServiceFee int64 `json:"serviceFee"`
	LevyVAT    int64 `json:"levyVat"`
	GrandTotal int64 `json:"grandTotal"`
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// ComputeCheckout adds the service fee and levy/VAT on top of a booking total.
func ComputeCheckout(totalCost int64) CheckoutQuote {
	fee := roundMoney(float64(totalCost) * ServiceFeeRate)
	levy := roundMoney(float64(totalCost) * LevyVATRate)
	return CheckoutQuote{
		Subtotal:   totalCost,
		ServiceFee: fee,
		LevyVAT:    levy,
		GrandTotal: totalCost + fee + levy,
	}
}

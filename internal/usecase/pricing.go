package usecase

import (
	"math"

	"servicehub/internal/data/entity"
)

// Quote is the priced breakdown for one offering. Subtotal, Tax and
// Total are display values rounded to 2 decimals; AmountMinorUnits is
// the exact integer amount (e.g. paise) handed to the payment gateway.
type Quote struct {
	Subtotal         float64
	Tax              float64
	Total            float64
	Currency         string
	AmountMinorUnits int64
}

// PricingEngine computes checkout totals from a priced offering. Pure
// and deterministic; nothing here touches a store.
type PricingEngine struct {
	taxRate  float64
	currency string
}

func NewPricingEngine(taxRate float64, currency string) *PricingEngine {
	return &PricingEngine{
		taxRate:  taxRate,
		currency: currency,
	}
}

// Price computes subtotal, tax and total for an offering. Rounding
// happens only at the final display step: intermediate arithmetic stays
// unrounded so the lines never drift apart, and the minor-unit amount is
// produced by a single half-up round of total x 100.
func (p *PricingEngine) Price(offering *entity.PricedOffering) Quote {
	subtotal := offering.UnitPrice
	tax := subtotal * p.taxRate
	total := subtotal + tax

	return Quote{
		Subtotal:         round2(subtotal),
		Tax:              round2(tax),
		Total:            round2(total),
		Currency:         p.currency,
		AmountMinorUnits: int64(math.Round(total * 100)),
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package domain

import "math"

// PricingConfig holds the storefront pricing policy.
type PricingConfig struct {
	// TaxRate is the flat tax rate applied to the subtotal.
	TaxRate float64
	// FreeShippingThreshold is the subtotal (exclusive) above which shipping
	// is free.
	FreeShippingThreshold float64
	// FlatShippingRate is charged whenever the subtotal does not exceed the
	// free shipping threshold.
	FlatShippingRate float64
}

// DefaultPricingConfig returns the storefront defaults: 8% tax, free
// shipping on subtotals over $100, flat $9.99 shipping otherwise.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		TaxRate:               0.08,
		FreeShippingThreshold: 100,
		FlatShippingRate:      9.99,
	}
}

// Summary is the derived monetary breakdown of a cart. All money fields are
// rounded to two decimal places.
type Summary struct {
	ItemCount             int     `json:"item_count"`
	Subtotal              float64 `json:"subtotal"`
	Tax                   float64 `json:"tax"`
	Shipping              float64 `json:"shipping"`
	Total                 float64 `json:"total"`
	FreeShippingEligible  bool    `json:"free_shipping_eligible"`
	FreeShippingRemaining float64 `json:"free_shipping_remaining"`
}

// Subtotal returns the unrounded sum of price times quantity over all items.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Summarize computes the cart's monetary summary under the given pricing
// policy. Each money value is rounded independently before the rounded
// values are combined into the total; the flat shipping rate applies to an
// empty cart as a consequence of the literal threshold rule.
func (c Cart) Summarize(cfg PricingConfig) Summary {
	subtotal := c.Subtotal()

	shipping := cfg.FlatShippingRate
	if subtotal > cfg.FreeShippingThreshold {
		shipping = 0
	}

	roundedSubtotal := round2(subtotal)
	roundedTax := round2(subtotal * cfg.TaxRate)
	roundedShipping := round2(shipping)

	remaining := 0.0
	if subtotal <= cfg.FreeShippingThreshold {
		remaining = round2(cfg.FreeShippingThreshold - subtotal)
		if remaining < 0 {
			remaining = 0
		}
	}

	return Summary{
		ItemCount:             c.ItemCount(),
		Subtotal:              roundedSubtotal,
		Tax:                   roundedTax,
		Shipping:              roundedShipping,
		Total:                 round2(roundedSubtotal + roundedTax + roundedShipping),
		FreeShippingEligible:  subtotal > cfg.FreeShippingThreshold,
		FreeShippingRemaining: remaining,
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package orders

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pricing reglas de envío del marketplace.
type Pricing struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal // 0 = nunca gratis
}

// NewPricing parsea los valores de configuración (SHOP_SHIPPING_FEE, SHOP_FREE_SHIPPING_THRESHOLD).
func NewPricing(fee, threshold string) (Pricing, error) {
	f, err := decimal.NewFromString(fee)
	if err != nil {
		return Pricing{}, fmt.Errorf("pricing: costo de envío %q: %w", fee, err)
	}
	t, err := decimal.NewFromString(threshold)
	if err != nil {
		return Pricing{}, fmt.Errorf("pricing: umbral de envío gratis %q: %w", threshold, err)
	}
	return Pricing{ShippingFee: f, FreeShippingThreshold: t}, nil
}

// Shipping costo de envío para un subtotal.
func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if p.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

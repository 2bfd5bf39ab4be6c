package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tillpos/internal/model"
)

// Discount entry modes.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Cart is the uncommitted working set for the next sale. It lives only in
// memory, owned by the operator's session: it is either finalized into an
// Order at checkout or parked into a held Order, never persisted itself.
type Cart struct {
	Items         []model.OrderLineItem
	CustomerID    *uuid.UUID
	DiscountValue decimal.Decimal
	DiscountType  string
	Note          string
}

// Empty reports whether the cart has no line items.
func (c *Cart) Empty() bool { return len(c.Items) == 0 }

// Totals is the priced view of a cart snapshot.
type Totals struct {
	Subtotal decimal.Decimal
	TaxTotal decimal.Decimal
	Discount decimal.Decimal
	// Total = Subtotal + TaxTotal - Discount. Deliberately NOT floored at
	// zero: a discount exceeding subtotal+tax yields a negative total, which
	// is preserved for audit correctness. Presentation layers may clamp.
	Total decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals prices a cart snapshot. Pure and deterministic: every input
// was frozen when the line entered the cart, so the same cart always prices
// to the same totals regardless of later catalog changes.
func ComputeTotals(c *Cart) Totals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero

	for _, line := range c.Items {
		qty := decimal.NewFromInt(int64(line.Quantity))
		lineAmount := line.UnitPrice.Mul(qty)
		subtotal = subtotal.Add(lineAmount)
		taxTotal = taxTotal.Add(lineAmount.Mul(line.TaxRatePercent).Div(oneHundred))
	}

	discount := c.DiscountValue
	if c.DiscountType == DiscountPercent {
		discount = subtotal.Mul(c.DiscountValue).Div(oneHundred)
	}

	return Totals{
		Subtotal: subtotal,
		TaxTotal: taxTotal,
		Discount: discount,
		Total:    subtotal.Add(taxTotal).Sub(discount),
	}
}

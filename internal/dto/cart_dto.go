package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddItemRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type SetDiscountRequest struct {
	Value decimal.Decimal `json:"value" validate:"min=0"`
	Type  string          `json:"type"  validate:"required,oneof=percent fixed"`
}

type SetCustomerRequest struct {
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`
}

type SetNoteRequest struct {
	Note string `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxTotal decimal.Decimal `json:"tax_total"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

type CartLineResponse struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	DiscountType  string             `json:"discount_type"`
	Note          string             `json:"note"`
	Totals        TotalsResponse     `json:"totals"`
}

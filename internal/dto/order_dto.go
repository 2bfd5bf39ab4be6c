package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	ShiftID string `form:"shift_id" validate:"omitempty,uuid"`
	Status  string `form:"status"` // completed | refunded | held | voided | all
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card transfer"`
	// Tendered is required for cash payments and must cover the total.
	// Non-cash methods ignore it: tendered defaults to the total, change 0.
	Tendered *decimal.Decimal `json:"tendered"`
}

type HoldRequest struct {
	Note *string `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderLineResponse struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	ReceiptNumber string              `json:"receipt_number"`
	ShiftID       string              `json:"shift_id"`
	Status        string              `json:"status"`
	Items         []OrderLineResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxTotal      decimal.Decimal     `json:"tax_total"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	Tendered      *decimal.Decimal    `json:"tendered,omitempty"`
	Change        *decimal.Decimal    `json:"change,omitempty"`
	CustomerID    *string             `json:"customer_id,omitempty"`
	Note          *string             `json:"note,omitempty"`
	CreatedAt     string              `json:"created_at"`
}

package dto

import "github.com/shopspring/decimal"

// SellableItemResponse is the catalog view the register works from.
// TaxRatePercent is the resolved rate (item rate or organization default).
type SellableItemResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	StockQuantity  int             `json:"stock_quantity"`
	StockStatus    string          `json:"stock_status"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenShiftRequest struct {
	StartCash decimal.Decimal `json:"start_cash" validate:"min=0"`
}

type CloseShiftRequest struct {
	EndCash decimal.Decimal `json:"end_cash" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ShiftSummaryResponse is the Z-report: the frozen reconciliation of a
// closed shift.
type ShiftSummaryResponse struct {
	TotalOrders      int                        `json:"total_orders"`
	GrossSales       decimal.Decimal            `json:"gross_sales"`
	NetSales         decimal.Decimal            `json:"net_sales"`
	TotalTax         decimal.Decimal            `json:"total_tax"`
	TotalDiscount    decimal.Decimal            `json:"total_discount"`
	TotalRefunds     decimal.Decimal            `json:"total_refunds"`
	AverageCheck     decimal.Decimal            `json:"average_check"`
	CashExpected     decimal.Decimal            `json:"cash_expected"`
	CashActual       decimal.Decimal            `json:"cash_actual"`
	CashDifference   decimal.Decimal            `json:"cash_difference"`
	PaymentBreakdown map[string]decimal.Decimal `json:"payment_breakdown"`
}

type ShiftResponse struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	OpenedBy  string                `json:"opened_by"`
	StartCash decimal.Decimal       `json:"start_cash"`
	EndCash   *decimal.Decimal      `json:"end_cash,omitempty"`
	OpenedAt  string                `json:"opened_at"`
	ClosedAt  *string               `json:"closed_at,omitempty"`
	Summary   *ShiftSummaryResponse `json:"summary,omitempty"`
}

type ShiftListResponse struct {
	Data  []ShiftResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

package service

import (
	"tillpos/internal/model"

	"github.com/shopspring/decimal"
)

// ShiftSummary is the Z-report computed once at shift close and frozen onto
// the Shift record.
type ShiftSummary struct {
	TotalOrders      int
	GrossSales       decimal.Decimal
	NetSales         decimal.Decimal
	TotalTax         decimal.Decimal
	TotalDiscount    decimal.Decimal
	TotalRefunds     decimal.Decimal
	AverageCheck     decimal.Decimal
	CashExpected     decimal.Decimal
	CashActual       decimal.Decimal
	CashDifference   decimal.Decimal
	PaymentBreakdown map[string]decimal.Decimal
}

// BuildShiftSummary reconciles one shift's ledger slice against the counted
// drawer. Pure: given the same orders and cash counts it always produces the
// same summary.
//
// Gross sales include the original value of later-refunded orders, then back
// it out as refunds, so gross − refunds ≡ net ≡ Σtotal(completed). Expected
// cash is startCash plus cash-paid completed sales only: refunds do not
// reduce the drawer expectation — they flow through the finance ledger, not
// the drawer count.
func BuildShiftSummary(startCash decimal.Decimal, orders []model.Order, endCash decimal.Decimal) ShiftSummary {
	s := ShiftSummary{
		GrossSales:       decimal.Zero,
		NetSales:         decimal.Zero,
		TotalTax:         decimal.Zero,
		TotalDiscount:    decimal.Zero,
		TotalRefunds:     decimal.Zero,
		AverageCheck:     decimal.Zero,
		PaymentBreakdown: make(map[string]decimal.Decimal),
	}

	for _, o := range orders {
		switch o.Status {
		case model.OrderCompleted:
			s.TotalOrders++
			s.GrossSales = s.GrossSales.Add(o.Total)
			s.TotalTax = s.TotalTax.Add(o.TaxTotal)
			s.TotalDiscount = s.TotalDiscount.Add(o.Discount)
			prev, ok := s.PaymentBreakdown[o.PaymentMethod]
			if !ok {
				prev = decimal.Zero
			}
			s.PaymentBreakdown[o.PaymentMethod] = prev.Add(o.Total)
		case model.OrderRefunded:
			s.GrossSales = s.GrossSales.Add(o.Total)
			s.TotalRefunds = s.TotalRefunds.Add(o.Total)
		}
		// Held and voided orders never enter the reconciliation.
	}

	s.NetSales = s.GrossSales.Sub(s.TotalRefunds)
	if s.TotalOrders > 0 {
		s.AverageCheck = s.NetSales.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
	}

	cashSales, ok := s.PaymentBreakdown[model.PayCash]
	if !ok {
		cashSales = decimal.Zero
	}
	s.CashExpected = startCash.Add(cashSales)
	s.CashActual = endCash
	s.CashDifference = endCash.Sub(s.CashExpected)

	return s
}

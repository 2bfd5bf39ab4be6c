package service_test

import (
	"testing"

	"tillpos/internal/model"
	"tillpos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func completedOrder(total, tax, discount float64, method string) model.Order {
	return model.Order{
		Status:        model.OrderCompleted,
		Total:         decimal.NewFromFloat(total),
		TaxTotal:      decimal.NewFromFloat(tax),
		Discount:      decimal.NewFromFloat(discount),
		PaymentMethod: method,
	}
}

func TestBuildShiftSummary_Empty(t *testing.T) {
	s := service.BuildShiftSummary(decimal.NewFromInt(500), nil, decimal.NewFromInt(500))
	assert.Equal(t, 0, s.TotalOrders)
	assert.True(t, s.GrossSales.IsZero())
	assert.True(t, s.AverageCheck.IsZero())
	assert.Equal(t, "500", s.CashExpected.String())
	assert.True(t, s.CashDifference.IsZero())
}

func TestBuildShiftSummary_MixedPayments(t *testing.T) {
	orders := []model.Order{
		completedOrder(228, 28, 0, model.PayCash),
		completedOrder(100, 0, 20, model.PayCard),
		completedOrder(50, 0, 0, model.PayTransfer),
	}
	s := service.BuildShiftSummary(decimal.NewFromInt(500), orders, decimal.NewFromInt(728))

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, "378", s.GrossSales.String())
	assert.Equal(t, "378", s.NetSales.String())
	assert.Equal(t, "28", s.TotalTax.String())
	assert.Equal(t, "20", s.TotalDiscount.String())
	assert.Equal(t, "126", s.AverageCheck.String())

	assert.Equal(t, "228", s.PaymentBreakdown[model.PayCash].String())
	assert.Equal(t, "100", s.PaymentBreakdown[model.PayCard].String())
	assert.Equal(t, "50", s.PaymentBreakdown[model.PayTransfer].String())

	// Only the cash sale enters the drawer expectation.
	assert.Equal(t, "728", s.CashExpected.String())
	assert.True(t, s.CashDifference.IsZero())
}

func TestBuildShiftSummary_RefundsBackOutOfNet(t *testing.T) {
	refunded := completedOrder(100, 0, 0, model.PayCash)
	refunded.Status = model.OrderRefunded
	orders := []model.Order{
		completedOrder(228, 28, 0, model.PayCash),
		refunded,
	}
	s := service.BuildShiftSummary(decimal.NewFromInt(500), orders, decimal.NewFromInt(728))

	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, "328", s.GrossSales.String())
	assert.Equal(t, "100", s.TotalRefunds.String())
	assert.Equal(t, "228", s.NetSales.String())

	// A refunded order contributes nothing to the breakdown, and refunds do
	// not reduce the drawer expectation: they flow through the ledger.
	assert.Equal(t, "228", s.PaymentBreakdown[model.PayCash].String())
	assert.Equal(t, "728", s.CashExpected.String())
}

func TestBuildShiftSummary_HeldAndVoidedExcluded(t *testing.T) {
	held := completedOrder(50, 0, 0, "")
	held.Status = model.OrderHeld
	voided := completedOrder(75, 0, 0, "")
	voided.Status = model.OrderVoided

	s := service.BuildShiftSummary(decimal.NewFromInt(100), []model.Order{held, voided}, decimal.NewFromInt(100))
	assert.Equal(t, 0, s.TotalOrders)
	assert.True(t, s.GrossSales.IsZero())
	assert.Empty(t, s.PaymentBreakdown)
}

func TestBuildShiftSummary_Deterministic(t *testing.T) {
	orders := []model.Order{
		completedOrder(228, 28, 0, model.PayCash),
		completedOrder(99.99, 9.09, 11.11, model.PayCard),
	}
	first := service.BuildShiftSummary(decimal.NewFromInt(500), orders, decimal.NewFromInt(700))
	for i := 0; i < 5; i++ {
		again := service.BuildShiftSummary(decimal.NewFromInt(500), orders, decimal.NewFromInt(700))
		assert.True(t, first.NetSales.Equal(again.NetSales))
		assert.True(t, first.CashDifference.Equal(again.CashDifference))
		assert.True(t, first.AverageCheck.Equal(again.AverageCheck))
	}
}

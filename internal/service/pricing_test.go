package service_test

import (
	"testing"

	"tillpos/internal/model"
	"tillpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price float64, qty int, taxRate float64) model.OrderLineItem {
	return model.OrderLineItem{
		ItemID:         uuid.New(),
		Name:           "item",
		Kind:           model.KindProduct,
		UnitPrice:      decimal.NewFromFloat(price),
		Quantity:       qty,
		TaxRatePercent: decimal.NewFromFloat(taxRate),
	}
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := service.ComputeTotals(&service.Cart{DiscountType: service.DiscountFixed})
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxTotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotals_LineAndTax(t *testing.T) {
	// 100 × 2 at 14% tax: subtotal 200, tax 28, total 228
	cart := &service.Cart{
		Items:        []model.OrderLineItem{line(100, 2, 14)},
		DiscountType: service.DiscountFixed,
	}
	totals := service.ComputeTotals(cart)
	assert.Equal(t, "200", totals.Subtotal.String())
	assert.Equal(t, "28", totals.TaxTotal.String())
	assert.Equal(t, "0", totals.Discount.String())
	assert.Equal(t, "228", totals.Total.String())
}

func TestComputeTotals_MixedRates(t *testing.T) {
	cart := &service.Cart{
		Items: []model.OrderLineItem{
			line(100, 1, 14), // tax 14
			line(50, 2, 0),   // tax 0
		},
		DiscountType: service.DiscountFixed,
	}
	totals := service.ComputeTotals(cart)
	assert.Equal(t, "200", totals.Subtotal.String())
	assert.Equal(t, "14", totals.TaxTotal.String())
	assert.Equal(t, "214", totals.Total.String())
}

func TestComputeTotals_PercentDiscount(t *testing.T) {
	// 50% off a 200 subtotal: discount 100 (computed on subtotal, not tax)
	cart := &service.Cart{
		Items:         []model.OrderLineItem{line(100, 2, 14)},
		DiscountValue: decimal.NewFromInt(50),
		DiscountType:  service.DiscountPercent,
	}
	totals := service.ComputeTotals(cart)
	assert.Equal(t, "100", totals.Discount.String())
	assert.Equal(t, "128", totals.Total.String()) // 200 + 28 - 100
}

func TestComputeTotals_FixedDiscount(t *testing.T) {
	cart := &service.Cart{
		Items:         []model.OrderLineItem{line(100, 2, 14)},
		DiscountValue: decimal.NewFromInt(30),
		DiscountType:  service.DiscountFixed,
	}
	totals := service.ComputeTotals(cart)
	assert.Equal(t, "30", totals.Discount.String())
	assert.Equal(t, "198", totals.Total.String())
}

func TestComputeTotals_NegativeTotalPreserved(t *testing.T) {
	// A fixed discount larger than subtotal+tax yields a negative total.
	// The engine keeps the signed value; nothing clamps it to zero.
	cart := &service.Cart{
		Items:         []model.OrderLineItem{line(10, 1, 0)},
		DiscountValue: decimal.NewFromInt(25),
		DiscountType:  service.DiscountFixed,
	}
	totals := service.ComputeTotals(cart)
	assert.Equal(t, "-15", totals.Total.String())
	assert.True(t, totals.Total.IsNegative())
}

func TestComputeTotals_Deterministic(t *testing.T) {
	cart := &service.Cart{
		Items: []model.OrderLineItem{
			line(19.99, 3, 21),
			line(5.5, 7, 10.5),
		},
		DiscountValue: decimal.NewFromFloat(12.5),
		DiscountType:  service.DiscountPercent,
	}
	first := service.ComputeTotals(cart)
	for i := 0; i < 10; i++ {
		again := service.ComputeTotals(cart)
		assert.True(t, first.Total.Equal(again.Total))
		assert.True(t, first.TaxTotal.Equal(again.TaxTotal))
	}
}

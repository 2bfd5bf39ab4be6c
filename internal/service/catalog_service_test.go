package service_test

import (
	"context"
	"testing"

	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListSellableResolvesDefaultRate(t *testing.T) {
	env := newTestEnv() // default rate 14
	rate := 21.0
	env.addProduct("WithRate", 100, &rate, 10)
	env.addProduct("NoRate", 50, nil, 10)

	items, err := env.catalog.ListSellable(context.Background(), env.orgID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := map[string]dto.SellableItemResponse{}
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.Equal(t, "21", byName["WithRate"].TaxRatePercent.String())
	assert.Equal(t, "14", byName["NoRate"].TaxRatePercent.String())
}

func TestCatalog_AdjustStock(t *testing.T) {
	env := newTestEnv()
	p := env.addProduct("Widget", 100, nil, 10)

	resp, err := env.catalog.AdjustStock(context.Background(), env.orgID, p.ID, dto.AdjustStockRequest{
		Delta: -6, Reason: "breakage during delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.StockQuantity)
	assert.Equal(t, model.StockLow, resp.StockStatus)
}

func TestCatalog_AdjustStockFloorsAtZero(t *testing.T) {
	env := newTestEnv()
	p := env.addProduct("Widget", 100, nil, 3)

	resp, err := env.catalog.AdjustStock(context.Background(), env.orgID, p.ID, dto.AdjustStockRequest{
		Delta: -10, Reason: "full write-off",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockQuantity)
	assert.Equal(t, model.StockOut, resp.StockStatus)
}

func TestCatalog_AdjustStockThresholdBoundary(t *testing.T) {
	env := newTestEnv() // threshold 5
	p := env.addProduct("Widget", 100, nil, 0)

	// Restock to exactly the threshold: available, not low.
	resp, err := env.catalog.AdjustStock(context.Background(), env.orgID, p.ID, dto.AdjustStockRequest{
		Delta: 5, Reason: "restock delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StockAvailable, resp.StockStatus)
}

func TestCatalog_AdjustStockRejectsServices(t *testing.T) {
	env := newTestEnv()
	svc := env.addService("Haircut", 40)

	_, err := env.catalog.AdjustStock(context.Background(), env.orgID, svc.ID, dto.AdjustStockRequest{
		Delta: 5, Reason: "does not apply",
	})
	assert.ErrorIs(t, err, service.ErrNotStockTracked)
}

func TestCatalog_AdjustStockScopedToOrganization(t *testing.T) {
	env := newTestEnv()
	p := env.addProduct("Widget", 100, nil, 10)

	_, err := env.catalog.AdjustStock(context.Background(), uuid.New(), p.ID, dto.AdjustStockRequest{
		Delta: 1, Reason: "wrong org",
	})
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

package service_test

import (
	"context"
	"testing"

	"tillpos/internal/dto"
	"tillpos/internal/model"
	"tillpos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShift_Open(t *testing.T) {
	env := newTestEnv()

	resp, err := env.shifts.Open(context.Background(), env.orgID, env.operatorID, dto.OpenShiftRequest{
		StartCash: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShiftOpen, resp.Status)
	assert.Equal(t, "500", resp.StartCash.String())
	assert.Nil(t, resp.Summary)
}

func TestShift_SecondOpenRejected(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)

	_, err := env.shifts.Open(context.Background(), env.orgID, env.operatorID, dto.OpenShiftRequest{
		StartCash: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, service.ErrShiftAlreadyOpen)
}

func TestShift_OpenIndependentPerOrganization(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)

	// A different organization can still open its own shift.
	otherOrg := uuid.New()
	_, err := env.shifts.Open(context.Background(), otherOrg, env.operatorID, dto.OpenShiftRequest{
		StartCash: decimal.NewFromInt(200),
	})
	assert.NoError(t, err)
}

func TestShift_CloseWithoutOpen(t *testing.T) {
	env := newTestEnv()
	_, err := env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{
		EndCash: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, service.ErrNoOpenShift)
}

func TestShift_CloseIsTerminal(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)

	_, err := env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{
		EndCash: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// The shift is gone from the open slot: a second close finds nothing.
	_, err = env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{
		EndCash: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, service.ErrNoOpenShift)

	// And a new shift may open for the next sale period.
	_, err = env.shifts.Open(context.Background(), env.orgID, env.operatorID, dto.OpenShiftRequest{
		StartCash: decimal.NewFromInt(300),
	})
	assert.NoError(t, err)
}

func TestShift_CloseFreezesSummary(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)

	// One completed cash sale of 228 during the shift.
	rate := 14.0
	p := env.addProduct("Widget", 100, &rate, 10)
	_, err := env.carts.AddItem(context.Background(), env.operatorID, p.ID)
	require.NoError(t, err)
	_, err = env.carts.UpdateQuantity(env.operatorID, p.ID, 1)
	require.NoError(t, err)

	tendered := decimal.NewFromInt(230)
	_, err = env.checkout.Checkout(context.Background(), env.orgID, env.operatorID, dto.CheckoutRequest{
		PaymentMethod: model.PayCash,
		Tendered:      &tendered,
	})
	require.NoError(t, err)

	resp, err := env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{
		EndCash: decimal.NewFromInt(728),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Summary)
	s := resp.Summary
	assert.Equal(t, 1, s.TotalOrders)
	assert.Equal(t, "228", s.GrossSales.String())
	assert.Equal(t, "228", s.NetSales.String())
	assert.Equal(t, "28", s.TotalTax.String())
	assert.Equal(t, "728", s.CashExpected.String()) // 500 float + 228 cash sale
	assert.Equal(t, "728", s.CashActual.String())
	assert.True(t, s.CashDifference.IsZero())
	assert.Equal(t, "228", s.PaymentBreakdown[model.PayCash].String())
}

func TestShift_CloseCashShortage(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)

	resp, err := env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{
		EndCash: decimal.NewFromInt(480),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, "-20", resp.Summary.CashDifference.String())
}

func TestShift_History(t *testing.T) {
	env := newTestEnv()
	env.openShift(500)
	_, err := env.shifts.Close(context.Background(), env.orgID, dto.CloseShiftRequest{EndCash: decimal.NewFromInt(500)})
	require.NoError(t, err)

	list, err := env.shifts.History(context.Background(), env.orgID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Data, 1)
	assert.Equal(t, model.ShiftClosed, list.Data[0].Status)
	assert.NotNil(t, list.Data[0].Summary)
}

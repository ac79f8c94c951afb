package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
)

func TestSimulateWholeShareReturn(t *testing.T) {
	yahoo := &fakeYahoo{closeOn: 100.0, latestClose: 150.0}
	svc := NewSimulationService(yahoo, testLogger())

	result, err := svc.Simulate(context.Background(), &dto.SimulationRequest{
		Ticker:   "KCHOL.IS",
		DateExpr: "1 yıl önce",
		Amount:   10000,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.SharesBought)
	assert.InDelta(t, 15000.0, result.CurrentValue, 1e-9)
	assert.InDelta(t, 5000.0, result.NetGain, 1e-9)
	assert.InDelta(t, 50.0, result.ReturnPct, 1e-9)
}

func TestSimulateUninvestedRemainderCountsFlat(t *testing.T) {
	// 10000 TL at 317 TL buys 31 shares; the leftover 173 TL still sits
	// in the denominator and in the net gain baseline.
	yahoo := &fakeYahoo{closeOn: 317.0, latestClose: 317.0}
	svc := NewSimulationService(yahoo, testLogger())

	result, err := svc.Simulate(context.Background(), &dto.SimulationRequest{
		Ticker:   "KCHOL.IS",
		DateExpr: "6 ay önce",
		Amount:   10000,
	})
	require.NoError(t, err)

	assert.Equal(t, 31, result.SharesBought)
	assert.InDelta(t, 9827.0, result.CurrentValue, 1e-9)
	assert.InDelta(t, -173.0, result.NetGain, 1e-9)
	assert.InDelta(t, -1.73, result.ReturnPct, 1e-9)
}

func TestSimulateLossScenario(t *testing.T) {
	yahoo := &fakeYahoo{closeOn: 200.0, latestClose: 160.0}
	svc := NewSimulationService(yahoo, testLogger())

	result, err := svc.Simulate(context.Background(), &dto.SimulationRequest{
		Ticker:   "KCHOL.IS",
		DateExpr: "3 ay önce",
		Amount:   10000,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, result.SharesBought)
	assert.InDelta(t, 8000.0, result.CurrentValue, 1e-9)
	assert.InDelta(t, -2000.0, result.NetGain, 1e-9)
	assert.InDelta(t, -20.0, result.ReturnPct, 1e-9)
}

func TestSimulateUnparseableDate(t *testing.T) {
	yahoo := &fakeYahoo{closeOn: 100.0, latestClose: 150.0}
	svc := NewSimulationService(yahoo, testLogger())

	_, err := svc.Simulate(context.Background(), &dto.SimulationRequest{
		Ticker:   "KCHOL.IS",
		DateExpr: "geçen bayramdan önce bir ara",
		Amount:   10000,
	})
	assert.ErrorIs(t, err, errs.ErrDateResolution)
}

func TestSimulatePriceLookupFailure(t *testing.T) {
	yahoo := &fakeYahoo{err: errExternal}
	svc := NewSimulationService(yahoo, testLogger())

	_, err := svc.Simulate(context.Background(), &dto.SimulationRequest{
		Ticker:   "KCHOL.IS",
		DateExpr: "1 ay önce",
		Amount:   10000,
	})
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*errs.ExternalServiceError))
}

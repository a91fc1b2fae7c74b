package impl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Add(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewLedgerService(fx.params)
	rewards := NewRewardService(fx.params)
	customers := NewCustomerService(fx.params)

	customer, err := customers.Create(ctx, newCustomerInput())
	require.NoError(t, err)

	t.Run("unpriced without a conversion rate", func(t *testing.T) {
		result, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: customer.ID, Type: entity.LedgerEarned, Points: 40})
		require.NoError(t, err)
		assert.Equal(t, "RL-20240110-0001", result.ID)

		entry, err := svc.Get(ctx, result.ID)
		require.NoError(t, err)
		assert.Nil(t, entry.EquivalentValue)
		assert.Nil(t, entry.ConversionRate)
		assert.Equal(t, "Ana Reyes", entry.CustomerName)
		assert.True(t, testNow.Equal(entry.Date))
	})

	_, err = rewards.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 4, Peso: decimal.RequireFromString("1")})
	require.NoError(t, err)

	t.Run("priced at the latest rate", func(t *testing.T) {
		result, err := svc.Add(ctx, &usecase.LedgerInput{
			CustomerID:   customer.ID,
			CustomerName: "Walk-in",
			Type:         entity.LedgerRedeemed,
			Points:       10,
		})
		require.NoError(t, err)
		assert.Equal(t, "RL-20240110-0002", result.ID)

		entry, err := svc.Get(ctx, result.ID)
		require.NoError(t, err)
		require.NotNil(t, entry.EquivalentValue)
		assert.True(t, decimal.RequireFromString("2.5").Equal(*entry.EquivalentValue))
		require.NotNil(t, entry.ConversionRate)
		assert.True(t, decimal.RequireFromString("0.25").Equal(*entry.ConversionRate))
		assert.Equal(t, "Walk-in", entry.CustomerName)
	})

	t.Run("explicit value wins", func(t *testing.T) {
		value := decimal.RequireFromString("7")
		result, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: customer.ID, Type: entity.LedgerEarned, Points: 10, EquivalentValue: &value})
		require.NoError(t, err)

		entry, err := svc.Get(ctx, result.ID)
		require.NoError(t, err)
		assert.True(t, value.Equal(*entry.EquivalentValue))
	})

	t.Run("type must be Earned or Redeemed", func(t *testing.T) {
		_, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: customer.ID, Type: "Gifted", Points: 10})
		requireErrorCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("points must be positive", func(t *testing.T) {
		_, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: customer.ID, Type: entity.LedgerEarned})
		requireErrorCode(t, err, "VALIDATION_FAILED")
	})
}

func TestLedgerService_List_BusinessDays(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)

	// 23:30 on Jan 9 and 00:30 on Jan 10 in Manila.
	for _, at := range []time.Time{
		time.Date(2024, 1, 9, 15, 30, 0, 0, time.UTC),
		time.Date(2024, 1, 9, 16, 30, 0, 0, time.UTC),
	} {
		_, err := NewLedgerService(fx.at(at).params).Add(ctx, &usecase.LedgerInput{
			CustomerID: "C-20240109-0001",
			Type:       entity.LedgerEarned,
			Points:     5,
		})
		require.NoError(t, err)
	}
	_, err := NewLedgerService(fx.at(testNow).params).Add(ctx, &usecase.LedgerInput{
		CustomerID: "C-20240109-0002",
		Type:       entity.LedgerRedeemed,
		Points:     5,
	})
	require.NoError(t, err)

	svc := NewLedgerService(fx.params)

	jan9, err := svc.List(ctx, usecase.LedgerQuery{From: "2024-01-09", To: "2024-01-09"})
	require.NoError(t, err)
	require.Len(t, jan9, 1)
	assert.Equal(t, "RL-20240109-0001", jan9[0].ID)

	jan10, err := svc.List(ctx, usecase.LedgerQuery{From: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, jan10, 2)
	assert.Equal(t, "RL-20240110-0002", jan10[0].ID)

	redeemed, err := svc.List(ctx, usecase.LedgerQuery{Type: entity.LedgerRedeemed})
	require.NoError(t, err)
	assert.Len(t, redeemed, 1)

	all, err := svc.List(ctx, usecase.LedgerQuery{Type: "All", CustomerID: "C-20240109-0001"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(ctx, usecase.LedgerQuery{From: "2024-01-10", To: "2024-01-09"})
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestLedgerService_UpdateNotes(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewLedgerService(fx.params)

	added, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: "C-1", Type: entity.LedgerEarned, Points: 5, Notes: "first"})
	require.NoError(t, err)

	_, err = svc.UpdateNotes(ctx, added.ID, "corrected")
	require.NoError(t, err)

	logs, err := svc.Logs(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ledger_entry", logs[0].Subject)
	assert.Equal(t, "first", logs[0].From)
	assert.Equal(t, "corrected", logs[0].To)

	events := fx.publishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, entity.NamespaceLedger, events[0].Namespace)

	_, err = svc.UpdateNotes(ctx, "RL-20240110-0042", "x")
	requireErrorCode(t, err, "LEDGER_ENTRY_NOT_FOUND")
}

func TestLedgerService_Export(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewLedgerService(fx.params)

	value := decimal.RequireFromString("3")
	_, err := svc.Add(ctx, &usecase.LedgerInput{CustomerID: "C-1", CustomerName: "Ana", Type: entity.LedgerEarned, Points: 30, EquivalentValue: &value})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &usecase.LedgerInput{CustomerID: "C-2", CustomerName: "Ben", Type: entity.LedgerEarned, Points: 10})
	require.NoError(t, err)

	export, err := svc.Export(ctx, "csv", usecase.LedgerQuery{CustomerID: "C-1"})
	require.NoError(t, err)

	table, err := tabular.Read(bytes.NewReader(export.Data), tabular.CSV)
	require.NoError(t, err)
	assert.Equal(t, ledgerExportHeaders, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Ana", table.Rows[0]["Customer Name"])
	assert.Equal(t, "3.00", table.Rows[0]["Equivalent Value"])
	assert.Empty(t, table.Rows[0]["Conversion Rate"])
	assert.Equal(t, "2024-01-10T10:00:00+08:00", table.Rows[0]["Date"])
}

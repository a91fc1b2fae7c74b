package impl

import (
	"bytes"
	"context"
	"testing"

	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemInput(group, name string) *usecase.ItemInput {
	return &usecase.ItemInput{
		GroupID:      group,
		Name:         name,
		UnitPrice:    decimal.RequireFromString("12.50"),
		Stock:        10,
		ReorderLevel: 2,
		Barcode:      "4800016",
	}
}

func createTestInventory(t *testing.T) (*serviceFixtures, usecase.InventoryUsecase) {
	t.Helper()

	fx := newServiceFixtures(t)
	svc := NewInventoryService(fx.params)
	_, err := svc.CreateGroup(context.Background(), &usecase.ItemGroupInput{ID: "AB", Name: "Beverages"})
	require.NoError(t, err)

	return fx, svc
}

func TestInventoryService_Groups(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	t.Run("codes must have two characters", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, &usecase.ItemGroupInput{ID: "ABC", Name: "Too long"})
		requireErrorCode(t, err, "INVALID_GROUP_CODE")
	})

	t.Run("codes are unique", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, &usecase.ItemGroupInput{ID: "AB", Name: "Again"})
		requireErrorCode(t, err, "CONFLICT")
	})

	t.Run("rename is logged", func(t *testing.T) {
		_, err := svc.UpdateGroup(ctx, "AB", "Drinks")
		require.NoError(t, err)

		logs, err := svc.GroupLogs(ctx, "AB")
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "Beverages", logs[0].From)
		assert.Equal(t, "Drinks", logs[0].To)
	})

	t.Run("groups holding items are kept", func(t *testing.T) {
		_, err := svc.Create(ctx, newItemInput("AB", "Cola"))
		require.NoError(t, err)

		_, err = svc.DeleteGroup(ctx, "AB")
		requireErrorCode(t, err, "GROUP_HAS_ITEMS")

		groups, err := svc.ListGroups(ctx)
		require.NoError(t, err)
		assert.Len(t, groups, 1)
	})

	t.Run("empty groups are deleted", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, &usecase.ItemGroupInput{ID: "ZZ", Name: "Empty"})
		require.NoError(t, err)

		_, err = svc.DeleteGroup(ctx, "ZZ")
		require.NoError(t, err)
	})
}

func TestInventoryService_ItemIdentifiers(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	next, err := svc.NextID(ctx, "AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0001", next)

	// Peeking does not reserve.
	next, err = svc.NextID(ctx, "AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0001", next)

	first, err := svc.Create(ctx, newItemInput("AB", "Cola"))
	require.NoError(t, err)
	assert.Equal(t, "AB0001", first.ID)

	second, err := svc.Create(ctx, newItemInput("AB", "Juice"))
	require.NoError(t, err)
	assert.Equal(t, "AB0002", second.ID)

	_, err = svc.Create(ctx, newItemInput("CD", "Orphan"))
	requireErrorCode(t, err, "ITEM_GROUP_NOT_FOUND")

	_, err = svc.NextID(ctx, "A")
	requireErrorCode(t, err, "INVALID_GROUP_CODE")
}

func TestInventoryService_UpdateAndArchive(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	created, err := svc.Create(ctx, newItemInput("AB", "Cola"))
	require.NoError(t, err)

	input := newItemInput("AB", "Cola")
	input.UnitPrice = decimal.RequireFromString("13")
	_, err = svc.Update(ctx, created.ID, input)
	require.NoError(t, err)

	_, err = svc.Archive(ctx, created.ID)
	require.NoError(t, err)

	item, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusArchived, item.Status)
	assert.True(t, decimal.RequireFromString("13").Equal(item.UnitPrice))

	logs, err := svc.Logs(ctx, created.ID)
	require.NoError(t, err)
	fields := make([]string, 0, len(logs))
	for _, entry := range logs {
		fields = append(fields, entry.Field)
	}
	assert.ElementsMatch(t, []string{"unit_price", "status"}, fields)

	active, err := svc.List(ctx, entity.ItemFilter{Status: entity.ItemStatusActive})
	require.NoError(t, err)
	assert.Empty(t, active)

	negative := newItemInput("AB", "Cola")
	negative.UnitPrice = decimal.RequireFromString("-1")
	_, err = svc.Update(ctx, created.ID, negative)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestInventoryService_Import(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	_, err := svc.Create(ctx, newItemInput("AB", "Cola"))
	require.NoError(t, err)

	summary, err := svc.Import(ctx, usecase.Rows{
		{"Item Group ID": "AB", "Item Name": "Cola", "Unit Price": "12.50", "Current Stock": "1", "Reorder Level": "0", "Barcode": "4800016"},
		{"Item Group ID": "AB", "Item Name": "Cola", "Unit Price": "12.50", "Current Stock": "1", "Reorder Level": "0", "Barcode": "4800017"},
		{"Item Group": "Snacks (SN)", "Item Name": "Chips", "Unit Price": "20", "Current Stock": "5", "Reorder Level": "1"},
		{"Item Group ID": "AB", "Item Name": "Water", "Unit Price": "cheap", "Current Stock": "5", "Reorder Level": "1"},
		{"Item Group ID": "AB", "Item Name": "Tea", "Unit Price": "15", "Reorder Level": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Failed)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	names := map[string]string{}
	for _, g := range groups {
		names[g.ID] = g.Name
	}
	assert.Equal(t, "Snacks", names["SN"])

	items, err := svc.List(ctx, entity.ItemFilter{GroupID: "SN"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SN0001", items[0].ID)
}

func TestInventoryService_Export(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	created, err := svc.Create(ctx, newItemInput("AB", "Cola"))
	require.NoError(t, err)

	export, err := svc.Export(ctx, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, tabular.XLSX.ContentType(), export.ContentType)

	table, err := tabular.Read(bytes.NewReader(export.Data), tabular.XLSX)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, created.ID, table.Rows[0]["Item ID"])
	assert.Equal(t, "Beverages (AB)", table.Rows[0]["Item Group"])
	assert.Equal(t, "12.5", table.Rows[0]["Unit Price"])
}

func TestInventoryService_Import_KeepsExportedIDs(t *testing.T) {
	ctx := context.Background()
	_, source := createTestInventory(t)

	cola, err := source.Create(ctx, newItemInput("AB", "Cola"))
	require.NoError(t, err)
	tea, err := source.Create(ctx, newItemInput("AB", "Tea"))
	require.NoError(t, err)
	_, err = source.Archive(ctx, cola.ID)
	require.NoError(t, err)
	export, err := source.Export(ctx, "csv")
	require.NoError(t, err)
	rows := exportedRows(t, export)

	fx := newServiceFixtures(t)
	svc := NewInventoryService(fx.params)

	summary, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)

	item, err := svc.Get(ctx, cola.ID)
	require.NoError(t, err)
	assert.Equal(t, "AB0001", item.ID)
	assert.Equal(t, entity.ItemStatusArchived, item.Status)
	_, err = svc.Get(ctx, tea.ID)
	require.NoError(t, err)

	next, err := svc.NextID(ctx, "AB")
	require.NoError(t, err)
	assert.Equal(t, "AB0003", next)

	for _, row := range rows {
		row["Current Stock"] = "3"
	}
	edited, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, edited.Updated)

	item, err = svc.Get(ctx, tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Stock)
}

func TestInventoryService_Import_IgnoresIDOfOtherGroup(t *testing.T) {
	ctx := context.Background()
	_, svc := createTestInventory(t)

	summary, err := svc.Import(ctx, usecase.Rows{
		{"Item ID": "ZZ0009", "Item Group ID": "AB", "Item Name": "Cola", "Unit Price": "12", "Current Stock": "1", "Reorder Level": "0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)

	items, err := svc.List(ctx, entity.ItemFilter{GroupID: "AB"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AB0001", items[0].ID)
}

package impl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewSupplierService(fx.params)

	input := &usecase.SupplierInput{Name: "Acme Trading", Phone: "0917", Notes: "  "}
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "S-20240110-0001", created.ID)

	supplier, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, supplier.Notes)

	input.ContactPerson = "Mara"
	input.Email = "sales@acme.ph"
	_, err = svc.Update(ctx, created.ID, input)
	require.NoError(t, err)

	logs, err := svc.Logs(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	_, err = svc.Update(ctx, "S-20240110-0042", input)
	requireErrorCode(t, err, "SUPPLIER_NOT_FOUND")
}

func TestSupplierService_ImportExport(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewSupplierService(fx.params)

	summary, err := svc.Import(ctx, usecase.Rows{
		{"Supplier Name": "Acme", "Email": "a@acme.ph", "Phone Number": "1"},
		{"Supplier Name": "Acme", "Email": "a@acme.ph", "Phone Number": "2"},
		{"Supplier Name": "Acme", "Phone Number": "3"},
		{"Supplier Name": "Acme", "Phone Number": "4"},
		{"Supplier Name": "No Phone"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 3)
	assert.Equal(t, 5, summary.Errors[2].Row)

	export, err := svc.Export(ctx, "csv")
	require.NoError(t, err)

	table, err := tabular.Read(bytes.NewReader(export.Data), tabular.CSV)
	require.NoError(t, err)
	assert.Equal(t, supplierExportHeaders, table.Headers)
	assert.Len(t, table.Rows, 2)

	// Exported files import cleanly as duplicates.
	rows := make(usecase.Rows, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, row)
	}
	again, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Skipped)
	assert.Zero(t, again.Added)
}

func TestSupplierService_Import_KeepsExportedIDs(t *testing.T) {
	ctx := context.Background()
	source := NewSupplierService(newServiceFixtures(t).params)

	created, err := source.Create(ctx, &usecase.SupplierInput{Name: "Acme Trading", Phone: "0917", Notes: "net 30"})
	require.NoError(t, err)
	export, err := source.Export(ctx, "csv")
	require.NoError(t, err)
	rows := exportedRows(t, export)

	fx := newServiceFixtures(t).at(testNow.Add(48 * time.Hour))
	svc := NewSupplierService(fx.params)

	summary, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)

	supplier, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "S-20240110-0001", supplier.ID)
	assert.Equal(t, "net 30", supplier.Notes)

	rows[0]["Notes"] = "net 60"
	edited, err := svc.Import(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, edited.Updated)

	supplier, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "net 60", supplier.Notes)
}

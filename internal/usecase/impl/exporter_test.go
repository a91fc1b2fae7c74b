package impl

import (
	"context"
	"testing"

	"backoffice/internal/errors"
	"backoffice/internal/infra/clock"
	"backoffice/internal/infra/tabular"
	mockService "backoffice/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTable() *tabular.Table {
	table := tabular.NewTable("code", "status")
	table.Append("SUMMER", "Active")

	return table
}

func TestExporter_Render_Archives(t *testing.T) {
	ctx := context.Background()
	archive := mockService.NewMockExportArchive(t)
	e := &exporter{archive: archive, clock: clock.Fixed(testNow), logger: newDiscardLogger()}

	archive.EXPECT().Enabled().Return(true)
	archive.EXPECT().
		Store(ctx, "promos/20240110-020000.xlsx", mock.AnythingOfType("[]uint8")).
		Return("mem://exports/promos/20240110-020000.xlsx", nil)

	export, err := e.render(ctx, "promos", "XLSX", newTestTable())
	require.NoError(t, err)
	assert.Equal(t, "promos_20240110-020000.xlsx", export.FileName)
	assert.Equal(t, "mem://exports/promos/20240110-020000.xlsx", export.ArchiveKey)
	assert.NotEmpty(t, export.Data)
}

func TestExporter_Render_ArchiveFailureKeepsExport(t *testing.T) {
	ctx := context.Background()
	archive := mockService.NewMockExportArchive(t)
	e := &exporter{archive: archive, clock: clock.Fixed(testNow), logger: newDiscardLogger()}

	archive.EXPECT().Enabled().Return(true)
	archive.EXPECT().
		Store(ctx, "promos/20240110-020000.csv", mock.Anything).
		Return("", errors.New("bucket unavailable"))

	export, err := e.render(ctx, "promos", "csv", newTestTable())
	require.NoError(t, err)
	assert.Empty(t, export.ArchiveKey)
	assert.Equal(t, "code,status\nSUMMER,Active\n", string(export.Data))
}

func TestExporter_Render_DisabledArchive(t *testing.T) {
	archive := mockService.NewMockExportArchive(t)
	e := &exporter{archive: archive, clock: clock.Fixed(testNow), logger: newDiscardLogger()}

	archive.EXPECT().Enabled().Return(false)

	export, err := e.render(context.Background(), "promos", "", newTestTable())
	require.NoError(t, err)
	assert.Equal(t, "promos_20240110-020000.csv", export.FileName)
	assert.Equal(t, tabular.CSV.ContentType(), export.ContentType)
}

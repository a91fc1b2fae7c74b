package impl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	deliverycontext "backoffice/internal/delivery/context"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
)

const exportTimestamp = "20060102-150405"

// exporter renders export tables and archives the result when configured.
type exporter struct {
	archive service.ExportArchive
	clock   service.Clock
	logger  *slog.Logger
}

func (e *exporter) render(ctx context.Context, module, formatName string, table *tabular.Table) (*usecase.Export, error) {
	format, err := tabular.ParseFormat(formatName, "")
	if err != nil {
		return nil, domainerrors.ErrUnsupportedFormat.WithDetails(formatName)
	}

	var buf bytes.Buffer
	if err := tabular.Write(&buf, format, table); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s export", module)
	}

	stamp := e.clock.Now().UTC().Format(exportTimestamp)
	export := &usecase.Export{
		FileName:    fmt.Sprintf("%s_%s.%s", module, stamp, format.Extension()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}

	if e.archive != nil && e.archive.Enabled() {
		key := fmt.Sprintf("%s/%s.%s", module, stamp, format.Extension())
		archived, err := e.archive.Store(ctx, key, export.Data)
		if err != nil {
			// The caller still gets the file; only the archived copy is missing.
			deliverycontext.GetLoggerOrDefault(ctx, e.logger).ErrorContext(ctx, "Failed to archive export",
				slog.String("module", module),
				slog.Any("error", err),
			)
		} else {
			export.ArchiveKey = archived
		}
	}

	return export, nil
}

package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/usecase"
	"backoffice/internal/util"

	"github.com/shopspring/decimal"
)

type rowOutcome int

const (
	rowAdded rowOutcome = iota
	rowUpdated
	rowSkipped
)

// rowResult classifies one stored row. An updated row carries the change
// event to publish once its transaction has committed.
type rowResult struct {
	outcome rowOutcome
	reason  string
	event   *service.ChangeEvent
}

func added() rowResult {
	return rowResult{outcome: rowAdded}
}

func skipped(reason string) rowResult {
	return rowResult{outcome: rowSkipped, reason: reason}
}

// updated reports an existing row overwritten by the import. Without an
// event nothing changed and the row counts as skipped.
func updated(event *service.ChangeEvent) rowResult {
	if event == nil {
		return skipped("no changes")
	}

	return rowResult{outcome: rowUpdated, event: event}
}

// rowError rejects a single import row without stopping the batch.
type rowError struct {
	msg string
}

func (e *rowError) Error() string {
	return e.msg
}

func rejectRow(msg string) error {
	return &rowError{msg: msg}
}

// rowHandler stores one row inside its transaction.
type rowHandler func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error)

// runImport feeds rows one at a time, each in its own transaction, so that
// the first of two duplicate rows wins. Row rejections and validation
// failures are counted; any other error aborts the import.
func (b *base) runImport(ctx context.Context, module string, rows usecase.Rows, handle rowHandler) (*entity.ImportSummary, error) {
	logger := b.getLogger(ctx).With(slog.String("module", module))
	started := time.Now()
	summary := &entity.ImportSummary{}

	for i, raw := range rows {
		rowNumber := i + 1

		var result rowResult
		err := b.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			var err error
			result, err = handle(ctx, repoFactory, newRowValues(raw))

			return err
		})
		if err != nil {
			err = translate(err)
			if msg, ok := rowFailure(err); ok {
				summary.Fail(rowNumber, msg)

				continue
			}

			logger.ErrorContext(ctx, "Import aborted",
				slog.Int("row", rowNumber),
				slog.Any("error", err),
			)

			return nil, errors.Wrapf(err, "import row %d", rowNumber)
		}

		switch result.outcome {
		case rowAdded:
			summary.Added++
		case rowUpdated:
			summary.Updated++
			b.recorder.publish(ctx, result.event)
		case rowSkipped:
			summary.Skip(rowNumber, result.reason)
		}
	}

	logger.InfoContext(ctx, "Import finished",
		slog.Int("rows", summary.Total()),
		slog.Int("added", summary.Added),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.String("duration", util.FormatDuration(time.Since(started))),
	)

	return summary, nil
}

// importedID keeps an identifier that has the scheme's shape. Blank or
// malformed ones come back empty so that a fresh one gets allocated.
func importedID(scheme sequence.Scheme, id string) string {
	if _, ok := scheme.KeyOf(id); !ok {
		return ""
	}

	return id
}

// rowFailure reports whether err only concerns the row itself.
func rowFailure(err error) (string, bool) {
	var rowErr *rowError
	if errors.As(err, &rowErr) {
		return rowErr.msg, true
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < 500 {
		if details := appErr.Details(); details != "" {
			return details, true
		}

		return appErr.Message(), true
	}

	return "", false
}

// rowValues is an import row keyed by normalised header, so that
// "First Name", "first_name" and "FirstName" all name the same column.
type rowValues map[string]string

func newRowValues(raw map[string]string) rowValues {
	values := make(rowValues, len(raw))
	for header, value := range raw {
		values[headerKey(header)] = strings.TrimSpace(value)
	}

	return values
}

func headerKey(header string) string {
	var b strings.Builder
	for _, r := range header {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// get returns the first non-empty value among the given headers.
func (r rowValues) get(headers ...string) string {
	for _, header := range headers {
		if v := r[headerKey(header)]; v != "" {
			return v
		}
	}

	return ""
}

// intValue reads an optional whole number; blank reads as zero.
func (r rowValues) intValue(field string, headers ...string) (int, error) {
	raw := r.get(headers...)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		// Spreadsheets hand back whole numbers as "12.0".
		d, decErr := decimal.NewFromString(raw)
		if decErr != nil || !d.IsInteger() {
			return 0, rejectRow(field + " must be a whole number")
		}
		n = int(d.IntPart())
	}

	return n, nil
}

// decimalValue reads an optional amount; blank reads as nil.
func (r rowValues) decimalValue(field string, headers ...string) (*decimal.Decimal, error) {
	raw := r.get(headers...)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return nil, rejectRow(field + " must be a number")
	}

	return &d, nil
}

// dateValue reads an optional calendar date.
func (r rowValues) dateValue(field string, headers ...string) (entity.Date, error) {
	d, err := entity.ParseDate(r.get(headers...))
	if err != nil {
		return "", rejectRow(field + " must be a date (YYYY-MM-DD)")
	}

	return d, nil
}

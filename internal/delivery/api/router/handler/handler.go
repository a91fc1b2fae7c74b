// Package handler holds the HTTP handlers of the back office API.
package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/delivery/api/response"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/errors"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	// importFileField is the multipart field carrying an import file
	importFileField = "file"

	// HeaderArchiveKey reports where an export was archived
	HeaderArchiveKey = "X-Archive-Key"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// readImport decodes the uploaded table. The format comes from the "format"
// form value, or from the file extension when that is empty.
func readImport(c echo.Context) (usecase.Rows, error) {
	fileHeader, err := c.FormFile(importFileField)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("file is required")
	}

	format, err := tabular.ParseFormat(c.FormValue("format"), fileHeader.Filename)
	if err != nil {
		return nil, domainerrors.ErrUnsupportedFormat.WithDetails(fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	table, err := tabular.Read(file, format)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("file could not be read as " + string(format))
	}

	return table.Rows, nil
}

// sendExport writes a rendered export as a download.
func sendExport(c echo.Context, export *usecase.Export) error {
	if export.ArchiveKey != "" {
		c.Response().Header().Set(HeaderArchiveKey, export.ArchiveKey)
	}

	return response.File(c, export.FileName, export.ContentType, export.Data)
}

// bind decodes the request into req and reports malformed input.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return nil
}

// queryInt reads an optional integer query parameter. Missing or malformed
// values read as zero.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return n
}

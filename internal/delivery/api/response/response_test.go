package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()

	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestHandleAppError(t *testing.T) {
	c, rec := newContext()

	err := HandleAppError(c, domainerrors.ErrGroupHasItems.WithDetails("AB still holds 3 items"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "GROUP_HAS_ITEMS", body.Error.Code)
	assert.Equal(t, "AB still holds 3 items", body.Error.Details)
}

func TestHandleAppError_PassesOtherErrors(t *testing.T) {
	c, rec := newContext()
	storeErr := errors.New("disk I/O error")

	err := HandleAppError(c, storeErr)
	assert.True(t, errors.Is(err, storeErr))
	assert.False(t, c.Response().Committed)
	assert.Zero(t, rec.Body.Len())
}

func TestFile(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, File(c, "vouchers_20240110-020000.csv", "text/csv; charset=utf-8", []byte("id\n")))
	assert.Equal(t, `attachment; filename=vouchers_20240110-020000.csv`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "id\n", rec.Body.String())
}

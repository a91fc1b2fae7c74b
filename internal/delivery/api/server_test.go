package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/config"
	"backoffice/internal/delivery/api/router"
	"backoffice/internal/delivery/api/router/handler"
	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/infra/clock"
	"backoffice/internal/infra/persistence/database"
	"backoffice/internal/infra/qrcode"
	mockService "backoffice/internal/mocks/service"
	"backoffice/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testNow is 10:00 on 2024-01-10 in Manila.
var testNow = time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

// newTestAPI wires every handler to real services over an in-memory store.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.Env.ServiceName = "backoffice"
	cfg.HTTP.MaxRequestBodySize = "1M"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Business.Timezone = "Asia/Manila"
	cfg.Status.Persist = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, logger))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishChangeEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	fixed := clock.Fixed(testNow)
	params := impl.ServiceParams{
		TxManager: database.NewTransactionManager(db),
		Schemes:   sequence.NewSchemes(cfg.Location()),
		Clock:     fixed,
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	}

	r := router.NewRouter(router.RouterParams{
		SystemHandler:    handler.NewSystemHandler(handler.SystemHandlerParams{Config: cfg, Clock: fixed}),
		CustomerHandler:  handler.NewCustomerHandler(handler.CustomerHandlerParams{CustomerUC: impl.NewCustomerService(params), Logger: logger}),
		BillerHandler:    handler.NewBillerHandler(handler.BillerHandlerParams{BillerUC: impl.NewBillerService(params), Logger: logger}),
		InventoryHandler: handler.NewInventoryHandler(handler.InventoryHandlerParams{InventoryUC: impl.NewInventoryService(params), Logger: logger}),
		SupplierHandler:  handler.NewSupplierHandler(handler.SupplierHandlerParams{SupplierUC: impl.NewSupplierService(params), Logger: logger}),
		PromoHandler:     handler.NewPromoHandler(handler.PromoHandlerParams{PromoUC: impl.NewPromoService(params), Logger: logger}),
		VoucherHandler: handler.NewVoucherHandler(handler.VoucherHandlerParams{
			VoucherUC: impl.NewVoucherService(impl.VoucherServiceParams{
				Common:        params,
				QRCodeService: qrcode.NewQRCodeService(256, "M"),
			}),
			Logger: logger,
		}),
		RewardHandler: handler.NewRewardHandler(handler.RewardHandlerParams{RewardUC: impl.NewRewardService(params), Logger: logger}),
		LedgerHandler: handler.NewLedgerHandler(handler.LedgerHandlerParams{LedgerUC: impl.NewLedgerService(params), Logger: logger}),
	})

	return NewEcho(cfg, logger, r)
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestHealthAndSystem(t *testing.T) {
	e := newTestAPI(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/system", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info handler.SystemInfo
	decodeData(t, env, &info)
	assert.Equal(t, "Asia/Manila", info.Timezone)
	assert.Equal(t, entity.Date("2024-01-10"), info.Today)
	assert.True(t, info.PersistStatus)
}

func TestCustomerRoutes(t *testing.T) {
	e := newTestAPI(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/customers", map[string]any{
		"first_name": "Ana",
		"last_name":  "Reyes",
		"phone":      "09171234567",
		"address":    "Quezon City",
		"type":       "Regular",
		"status":     "Active",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result entity.Result
	decodeData(t, env, &result)
	assert.Equal(t, "C-20240110-0001", result.ID)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/customers/"+result.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var customer entity.Customer
	decodeData(t, env, &customer)
	assert.Equal(t, "Ana", customer.FirstName)
	assert.Equal(t, entity.Date("2024-01-10"), customer.DateJoined)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/customers", map[string]any{"first_name": "Ben"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.NotNil(t, env.Error.Details)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/customers/C-20240110-0099", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", env.Error.Code)
}

func TestCustomerImportAndExport(t *testing.T) {
	e := newTestAPI(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "customers.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("First Name,Last Name,Phone,Address,Type\nAna,Reyes,1,Quezon City,VIP\nCara,,,Makati,\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/import", &body)
	req.Header.Set(echo.HeaderContentType, form.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var summary entity.ImportSummary
	decodeData(t, env, &summary)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Failed)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/customers/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "customers_20240110-020000.csv")
	assert.Contains(t, rec.Body.String(), "Ana")

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/customers/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNSUPPORTED_FORMAT", env.Error.Code)
}

func TestImportRequiresFile(t *testing.T) {
	e := newTestAPI(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/suppliers/import", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestVoucherRoutes(t *testing.T) {
	e := newTestAPI(t)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/vouchers", map[string]any{
		"from":       "1",
		"to":         "3",
		"refill":     100,
		"start_date": "2024-01-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var outcome entity.SaveVouchersOutcome
	decodeData(t, env, &outcome)
	assert.Equal(t, 3, outcome.Saved)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/vouchers?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page entity.Page[*entity.Voucher]
	decodeData(t, env, &page)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Data, 2)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/vouchers/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary entity.VoucherSummary
	decodeData(t, env, &summary)
	assert.Equal(t, 3, summary.Circulation)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/vouchers/0000000002/qr", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/vouchers/lookup", map[string]string{
		"qr_data": `{"voucher_id":"0000000002","type":"voucher"}`,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var voucher entity.Voucher
	decodeData(t, env, &voucher)
	assert.Equal(t, "0000000002", voucher.ID)

	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/vouchers/lookup", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestItemGroupRoutes(t *testing.T) {
	e := newTestAPI(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/item-groups", map[string]string{"id": "BV", "name": "Beverages"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/item-groups/BV/next-item-id", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var next handler.NextItemIDResponse
	decodeData(t, env, &next)
	assert.Equal(t, "BV", next.GroupID)
	assert.Equal(t, "BV0001", next.NextID)

	rec, env = doJSON(t, e, http.MethodPut, "/api/v1/item-groups/BV", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	rec, _ = doJSON(t, e, http.MethodDelete, "/api/v1/item-groups/BV", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLedgerRoutes(t *testing.T) {
	e := newTestAPI(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/conversion-rates", map[string]any{"points": 10, "peso": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/ledger", map[string]any{
		"customer_id":   "C-20240110-0001",
		"customer_name": "Ana Reyes",
		"type":          "Earned",
		"points":        50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var result entity.Result
	decodeData(t, env, &result)
	assert.Equal(t, "RL-20240110-0001", result.ID)

	rec, _ = doJSON(t, e, http.MethodPatch, "/api/v1/ledger/"+result.ID+"/notes", map[string]string{"notes": "birthday bonus"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/ledger?from=2024-01-10&to=2024-01-10&type=All", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []*entity.LedgerEntry
	decodeData(t, env, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "birthday bonus", entries[0].Notes)
	require.NotNil(t, entries[0].EquivalentValue)
	assert.True(t, decimal.NewFromInt(5).Equal(*entries[0].EquivalentValue))

	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/ledger?from=2024-01-11&to=2024-01-10", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

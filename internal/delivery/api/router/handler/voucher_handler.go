package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/api/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// VoucherHandlerParams holds dependencies for VoucherHandler, injected by Fx.
type VoucherHandlerParams struct {
	fx.In

	VoucherUC usecase.VoucherUsecase
	Logger    *slog.Logger
}

// VoucherHandler holds dependencies for prepaid voucher handlers
type VoucherHandler struct {
	voucherUC usecase.VoucherUsecase
	logger    *slog.Logger
}

// NewVoucherHandler is the constructor for VoucherHandler
func NewVoucherHandler(params VoucherHandlerParams) *VoucherHandler {
	return &VoucherHandler{
		voucherUC: params.VoucherUC,
		logger:    params.Logger,
	}
}

// LookupRequest represents the request body for resolving a scanned QR code
type LookupRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

func voucherFilter(c echo.Context) entity.VoucherFilter {
	return entity.VoucherFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
}

// Save handles creating a single voucher, a serial range or a quantity
func (h *VoucherHandler) Save(c echo.Context) error {
	var req usecase.SaveVouchersInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	outcome, err := h.voucherUC.Save(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, outcome)
}

// List handles a page of vouchers
func (h *VoucherHandler) List(c echo.Context) error {
	page, err := h.voucherUC.List(c.Request().Context(), voucherFilter(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *VoucherHandler) Get(c echo.Context) error {
	voucher, err := h.voucherUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, voucher)
}

func (h *VoucherHandler) Update(c echo.Context) error {
	var req usecase.VoucherUpdate
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.voucherUC.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Summary handles the voucher counts per status
func (h *VoucherHandler) Summary(c echo.Context) error {
	summary, err := h.voucherUC.Summary(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// QRCode handles rendering a voucher serial as a PNG
func (h *VoucherHandler) QRCode(c echo.Context) error {
	png, err := h.voucherUC.QRCode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// Lookup handles resolving scanned QR text to its voucher
func (h *VoucherHandler) Lookup(c echo.Context) error {
	var req LookupRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	voucher, err := h.voucherUC.Lookup(c.Request().Context(), req.QRData)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, voucher)
}

func (h *VoucherHandler) Logs(c echo.Context) error {
	logs, err := h.voucherUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *VoucherHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.voucherUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// Export handles downloading every voucher matching the list filters
func (h *VoucherHandler) Export(c echo.Context) error {
	export, err := h.voucherUC.Export(c.Request().Context(), c.QueryParam("format"), voucherFilter(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

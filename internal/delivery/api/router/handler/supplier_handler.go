package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/api/response"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SupplierHandlerParams holds dependencies for SupplierHandler, injected by Fx.
type SupplierHandlerParams struct {
	fx.In

	SupplierUC usecase.SupplierUsecase
	Logger     *slog.Logger
}

type SupplierHandler struct {
	supplierUC usecase.SupplierUsecase
	logger     *slog.Logger
}

func NewSupplierHandler(params SupplierHandlerParams) *SupplierHandler {
	return &SupplierHandler{
		supplierUC: params.SupplierUC,
		logger:     params.Logger,
	}
}

func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.supplierUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(c echo.Context) error {
	supplier, err := h.supplierUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, supplier)
}

func (h *SupplierHandler) Create(c echo.Context) error {
	var req usecase.SupplierInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.supplierUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

func (h *SupplierHandler) Update(c echo.Context) error {
	var req usecase.SupplierInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.supplierUC.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *SupplierHandler) Logs(c echo.Context) error {
	logs, err := h.supplierUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *SupplierHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.supplierUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *SupplierHandler) Export(c echo.Context) error {
	export, err := h.supplierUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

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

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// CustomerHandler holds dependencies for customer-related handlers
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

// List handles listing customers, optionally filtered by type and status
func (h *CustomerHandler) List(c echo.Context) error {
	filter := entity.CustomerFilter{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
	}

	customers, err := h.customerUC.List(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customers)
}

// Create handles adding a customer
func (h *CustomerHandler) Create(c echo.Context) error {
	var req usecase.CustomerInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.customerUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// Get handles fetching one customer
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.customerUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// Update handles overwriting a customer
func (h *CustomerHandler) Update(c echo.Context) error {
	var req usecase.CustomerInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.customerUC.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *CustomerHandler) Logs(c echo.Context) error {
	logs, err := h.customerUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

// PointsEquivalent handles the peso value of one point for a customer
func (h *CustomerHandler) PointsEquivalent(c echo.Context) error {
	equivalent, err := h.customerUC.PointsEquivalent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, equivalent)
}

// Import handles a CSV or XLSX upload of customers
func (h *CustomerHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.customerUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *CustomerHandler) Export(c echo.Context) error {
	export, err := h.customerUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

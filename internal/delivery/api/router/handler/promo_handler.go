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

// PromoHandlerParams holds dependencies for PromoHandler, injected by Fx.
type PromoHandlerParams struct {
	fx.In

	PromoUC usecase.PromoUsecase
	Logger  *slog.Logger
}

// PromoHandler holds dependencies for promo code handlers
type PromoHandler struct {
	promoUC usecase.PromoUsecase
	logger  *slog.Logger
}

// NewPromoHandler is the constructor for PromoHandler
func NewPromoHandler(params PromoHandlerParams) *PromoHandler {
	return &PromoHandler{
		promoUC: params.PromoUC,
		logger:  params.Logger,
	}
}

// Save handles inserting or replacing a promo by code
func (h *PromoHandler) Save(c echo.Context) error {
	var req usecase.PromoInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.promoUC.Save(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// List handles listing promos with statuses derived as of today
func (h *PromoHandler) List(c echo.Context) error {
	filter := entity.PromoFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}

	promos, err := h.promoUC.List(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, promos)
}

func (h *PromoHandler) Get(c echo.Context) error {
	promo, err := h.promoUC.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, promo)
}

func (h *PromoHandler) Update(c echo.Context) error {
	var req usecase.PromoUpdate
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.promoUC.Update(c.Request().Context(), c.Param("code"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Stats handles the promo dashboard counters
func (h *PromoHandler) Stats(c echo.Context) error {
	stats, err := h.promoUC.Stats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// RecordRedemption handles a promo being used on an order
func (h *PromoHandler) RecordRedemption(c echo.Context) error {
	var req usecase.RedemptionInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.promoUC.RecordRedemption(c.Request().Context(), c.Param("code"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *PromoHandler) Logs(c echo.Context) error {
	logs, err := h.promoUC.Logs(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *PromoHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.promoUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *PromoHandler) Export(c echo.Context) error {
	export, err := h.promoUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/api/response"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RewardHandlerParams holds dependencies for RewardHandler, injected by Fx.
type RewardHandlerParams struct {
	fx.In

	RewardUC usecase.RewardUsecase
	Logger   *slog.Logger
}

// RewardHandler holds dependencies for reward rule and conversion rate handlers
type RewardHandler struct {
	rewardUC usecase.RewardUsecase
	logger   *slog.Logger
}

// NewRewardHandler is the constructor for RewardHandler
func NewRewardHandler(params RewardHandlerParams) *RewardHandler {
	return &RewardHandler{
		rewardUC: params.RewardUC,
		logger:   params.Logger,
	}
}

// SaveRule handles inserting or replacing a reward rule
func (h *RewardHandler) SaveRule(c echo.Context) error {
	var req usecase.RewardRuleInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.rewardUC.SaveRule(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *RewardHandler) ListRules(c echo.Context) error {
	rules, err := h.rewardUC.ListRules(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rules)
}

func (h *RewardHandler) GetRule(c echo.Context) error {
	rule, err := h.rewardUC.GetRule(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rule)
}

func (h *RewardHandler) UpdateRule(c echo.Context) error {
	var req usecase.RewardRuleUpdate
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.rewardUC.UpdateRule(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *RewardHandler) Logs(c echo.Context) error {
	logs, err := h.rewardUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *RewardHandler) Export(c echo.Context) error {
	export, err := h.rewardUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

// SaveConversionRate handles setting how many pesos a number of points is worth
func (h *RewardHandler) SaveConversionRate(c echo.Context) error {
	var req usecase.ConversionRateInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.rewardUC.SaveConversionRate(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// LatestConversionRate handles the rate currently in force
func (h *RewardHandler) LatestConversionRate(c echo.Context) error {
	rate, err := h.rewardUC.LatestConversionRate(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rate)
}

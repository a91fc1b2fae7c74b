package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/api/response"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LedgerHandlerParams holds dependencies for LedgerHandler, injected by Fx.
type LedgerHandlerParams struct {
	fx.In

	LedgerUC usecase.LedgerUsecase
	Logger   *slog.Logger
}

// LedgerHandler holds dependencies for rewards ledger handlers
type LedgerHandler struct {
	ledgerUC usecase.LedgerUsecase
	logger   *slog.Logger
}

// NewLedgerHandler is the constructor for LedgerHandler
func NewLedgerHandler(params LedgerHandlerParams) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: params.LedgerUC,
		logger:   params.Logger,
	}
}

// UpdateNotesRequest represents the request body for editing ledger notes
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

func ledgerQuery(c echo.Context) usecase.LedgerQuery {
	return usecase.LedgerQuery{
		CustomerID: c.QueryParam("customer_id"),
		Type:       c.QueryParam("type"),
		From:       c.QueryParam("from"),
		To:         c.QueryParam("to"),
	}
}

// Add handles recording earned or redeemed points
func (h *LedgerHandler) Add(c echo.Context) error {
	var req usecase.LedgerInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.ledgerUC.Add(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// List handles ledger entries filtered by customer, type and business days
func (h *LedgerHandler) List(c echo.Context) error {
	entries, err := h.ledgerUC.List(c.Request().Context(), ledgerQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entries)
}

func (h *LedgerHandler) Get(c echo.Context) error {
	entry, err := h.ledgerUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entry)
}

// UpdateNotes handles editing the only mutable field of a ledger entry
func (h *LedgerHandler) UpdateNotes(c echo.Context) error {
	var req UpdateNotesRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.ledgerUC.UpdateNotes(c.Request().Context(), c.Param("id"), req.Notes)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *LedgerHandler) Logs(c echo.Context) error {
	logs, err := h.ledgerUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *LedgerHandler) Export(c echo.Context) error {
	export, err := h.ledgerUC.Export(c.Request().Context(), c.QueryParam("format"), ledgerQuery(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

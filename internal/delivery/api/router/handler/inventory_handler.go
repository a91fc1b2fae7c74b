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

// InventoryHandlerParams holds dependencies for InventoryHandler, injected by Fx.
type InventoryHandlerParams struct {
	fx.In

	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

// InventoryHandler holds dependencies for item and item group handlers
type InventoryHandler struct {
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler
func NewInventoryHandler(params InventoryHandlerParams) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

// RenameGroupRequest represents the request body for renaming an item group
type RenameGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// NextItemIDResponse is the identifier the next item of a group would get
type NextItemIDResponse struct {
	GroupID string `json:"group_id"`
	NextID  string `json:"next_id"`
}

func (h *InventoryHandler) ListGroups(c echo.Context) error {
	groups, err := h.inventoryUC.ListGroups(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, groups)
}

// CreateGroup handles adding an item group with its two-character code
func (h *InventoryHandler) CreateGroup(c echo.Context) error {
	var req usecase.ItemGroupInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.CreateGroup(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

func (h *InventoryHandler) UpdateGroup(c echo.Context) error {
	var req RenameGroupRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.UpdateGroup(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// DeleteGroup handles removing an empty item group
func (h *InventoryHandler) DeleteGroup(c echo.Context) error {
	result, err := h.inventoryUC.DeleteGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *InventoryHandler) GroupLogs(c echo.Context) error {
	logs, err := h.inventoryUC.GroupLogs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

// NextID previews the next item identifier of a group without reserving it
func (h *InventoryHandler) NextID(c echo.Context) error {
	groupID := c.Param("id")
	nextID, err := h.inventoryUC.NextID(c.Request().Context(), groupID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &NextItemIDResponse{GroupID: groupID, NextID: nextID})
}

// List handles listing items by search text, group and status
func (h *InventoryHandler) List(c echo.Context) error {
	filter := entity.ItemFilter{
		Search:  c.QueryParam("search"),
		GroupID: c.QueryParam("group_id"),
		Status:  c.QueryParam("status"),
	}

	items, err := h.inventoryUC.List(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items)
}

func (h *InventoryHandler) Get(c echo.Context) error {
	item, err := h.inventoryUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item)
}

// Create handles adding an item to a group
func (h *InventoryHandler) Create(c echo.Context) error {
	var req usecase.ItemInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	var req usecase.ItemInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.inventoryUC.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// Archive handles hiding an item from sale
func (h *InventoryHandler) Archive(c echo.Context) error {
	result, err := h.inventoryUC.Archive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *InventoryHandler) Logs(c echo.Context) error {
	logs, err := h.inventoryUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

func (h *InventoryHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.inventoryUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *InventoryHandler) Export(c echo.Context) error {
	export, err := h.inventoryUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

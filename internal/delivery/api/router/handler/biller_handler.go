package handler

import (
	"log/slog"
	"net/http"

	"backoffice/internal/delivery/api/response"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BillerHandlerParams holds dependencies for BillerHandler, injected by Fx.
type BillerHandlerParams struct {
	fx.In

	BillerUC usecase.BillerUsecase
	Logger   *slog.Logger
}

// BillerHandler holds dependencies for biller and contact handlers
type BillerHandler struct {
	billerUC usecase.BillerUsecase
	logger   *slog.Logger
}

// NewBillerHandler is the constructor for BillerHandler
func NewBillerHandler(params BillerHandlerParams) *BillerHandler {
	return &BillerHandler{
		billerUC: params.BillerUC,
		logger:   params.Logger,
	}
}

// UpdateContactsRequest carries a batch of contact edits
type UpdateContactsRequest struct {
	Contacts []*usecase.ContactUpdate `json:"contacts" validate:"required,min=1"`
}

func (h *BillerHandler) List(c echo.Context) error {
	billers, err := h.billerUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, billers)
}

// Create handles adding a biller
func (h *BillerHandler) Create(c echo.Context) error {
	var req usecase.BillerInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.billerUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// Get handles fetching a biller with its contacts
func (h *BillerHandler) Get(c echo.Context) error {
	biller, err := h.billerUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, biller)
}

func (h *BillerHandler) Update(c echo.Context) error {
	var req usecase.BillerInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.billerUC.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *BillerHandler) Contacts(c echo.Context) error {
	contacts, err := h.billerUC.Contacts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, contacts)
}

// AddContact handles adding a contact person to a biller
func (h *BillerHandler) AddContact(c echo.Context) error {
	var req usecase.ContactInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.billerUC.AddContact(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// UpdateContacts handles editing several contacts of a biller at once
func (h *BillerHandler) UpdateContacts(c echo.Context) error {
	var req UpdateContactsRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.billerUC.UpdateContacts(c.Request().Context(), c.Param("id"), req.Contacts)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *BillerHandler) Logs(c echo.Context) error {
	logs, err := h.billerUC.Logs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, logs)
}

// Import handles a CSV or XLSX upload of billers with their primary contact
func (h *BillerHandler) Import(c echo.Context) error {
	rows, err := readImport(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.billerUC.Import(c.Request().Context(), rows)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}

func (h *BillerHandler) Export(c echo.Context) error {
	export, err := h.billerUC.Export(c.Request().Context(), c.QueryParam("format"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return sendExport(c, export)
}

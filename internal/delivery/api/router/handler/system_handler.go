package handler

import (
	"net/http"

	"backoffice/config"
	"backoffice/internal/delivery/api/response"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SystemHandlerParams holds dependencies for SystemHandler, injected by Fx.
type SystemHandlerParams struct {
	fx.In

	Config *config.Config
	Clock  service.Clock
}

// SystemHandler reports the settings clients need to agree with the server
type SystemHandler struct {
	cfg   *config.Config
	clock service.Clock
}

// NewSystemHandler creates a new SystemHandler instance
func NewSystemHandler(params SystemHandlerParams) *SystemHandler {
	return &SystemHandler{
		cfg:   params.Config,
		clock: params.Clock,
	}
}

// SystemInfo describes the running back office
type SystemInfo struct {
	ServiceName    string      `json:"service_name"`
	Timezone       string      `json:"timezone"`
	Today          entity.Date `json:"today"`
	PersistStatus  bool        `json:"persist_status"`
	ArchiveExports bool        `json:"archive_exports"`
}

// Info returns the business timezone and the calendar day it is in
func (h *SystemHandler) Info(c echo.Context) error {
	zone := h.cfg.Location()

	return response.Success(c, http.StatusOK, &SystemInfo{
		ServiceName:    h.cfg.Env.ServiceName,
		Timezone:       zone.String(),
		Today:          entity.DateOf(h.clock.Now().In(zone)),
		PersistStatus:  h.cfg.Status.Persist,
		ArchiveExports: h.cfg.Exports != nil && h.cfg.Exports.BucketURL != "",
	})
}

// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"backoffice/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SystemHandler    *handler.SystemHandler
	CustomerHandler  *handler.CustomerHandler
	BillerHandler    *handler.BillerHandler
	InventoryHandler *handler.InventoryHandler
	SupplierHandler  *handler.SupplierHandler
	PromoHandler     *handler.PromoHandler
	VoucherHandler   *handler.VoucherHandler
	RewardHandler    *handler.RewardHandler
	LedgerHandler    *handler.LedgerHandler
}

// Router holds all the handlers that need to be registered.
type Router struct {
	systemHandler    *handler.SystemHandler
	customerHandler  *handler.CustomerHandler
	billerHandler    *handler.BillerHandler
	inventoryHandler *handler.InventoryHandler
	supplierHandler  *handler.SupplierHandler
	promoHandler     *handler.PromoHandler
	voucherHandler   *handler.VoucherHandler
	rewardHandler    *handler.RewardHandler
	ledgerHandler    *handler.LedgerHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *Router {
	return &Router{
		systemHandler:    params.SystemHandler,
		customerHandler:  params.CustomerHandler,
		billerHandler:    params.BillerHandler,
		inventoryHandler: params.InventoryHandler,
		supplierHandler:  params.SupplierHandler,
		promoHandler:     params.PromoHandler,
		voucherHandler:   params.VoucherHandler,
		rewardHandler:    params.RewardHandler,
		ledgerHandler:    params.LedgerHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Static segments such as /export are registered next to /:id; echo
// prefers the static match.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/system", r.systemHandler.Info)

	customersGroup := apiV1.Group("/customers")
	{
		customersGroup.GET("", r.customerHandler.List)
		customersGroup.POST("", r.customerHandler.Create)
		customersGroup.GET("/export", r.customerHandler.Export)
		customersGroup.POST("/import", r.customerHandler.Import)
		customersGroup.GET("/:id", r.customerHandler.Get)
		customersGroup.PUT("/:id", r.customerHandler.Update)
		customersGroup.GET("/:id/logs", r.customerHandler.Logs)
		customersGroup.GET("/:id/points-equivalent", r.customerHandler.PointsEquivalent)
	}

	billersGroup := apiV1.Group("/billers")
	{
		billersGroup.GET("", r.billerHandler.List)
		billersGroup.POST("", r.billerHandler.Create)
		billersGroup.GET("/export", r.billerHandler.Export)
		billersGroup.POST("/import", r.billerHandler.Import)
		billersGroup.GET("/:id", r.billerHandler.Get)
		billersGroup.PUT("/:id", r.billerHandler.Update)
		billersGroup.GET("/:id/logs", r.billerHandler.Logs)
		billersGroup.GET("/:id/contacts", r.billerHandler.Contacts)
		billersGroup.POST("/:id/contacts", r.billerHandler.AddContact)
		billersGroup.PUT("/:id/contacts", r.billerHandler.UpdateContacts)
	}

	itemGroupsGroup := apiV1.Group("/item-groups")
	{
		itemGroupsGroup.GET("", r.inventoryHandler.ListGroups)
		itemGroupsGroup.POST("", r.inventoryHandler.CreateGroup)
		itemGroupsGroup.PUT("/:id", r.inventoryHandler.UpdateGroup)
		itemGroupsGroup.DELETE("/:id", r.inventoryHandler.DeleteGroup)
		itemGroupsGroup.GET("/:id/logs", r.inventoryHandler.GroupLogs)
		itemGroupsGroup.GET("/:id/next-item-id", r.inventoryHandler.NextID)
	}

	itemsGroup := apiV1.Group("/items")
	{
		itemsGroup.GET("", r.inventoryHandler.List)
		itemsGroup.POST("", r.inventoryHandler.Create)
		itemsGroup.GET("/export", r.inventoryHandler.Export)
		itemsGroup.POST("/import", r.inventoryHandler.Import)
		itemsGroup.GET("/:id", r.inventoryHandler.Get)
		itemsGroup.PUT("/:id", r.inventoryHandler.Update)
		itemsGroup.POST("/:id/archive", r.inventoryHandler.Archive)
		itemsGroup.GET("/:id/logs", r.inventoryHandler.Logs)
	}

	suppliersGroup := apiV1.Group("/suppliers")
	{
		suppliersGroup.GET("", r.supplierHandler.List)
		suppliersGroup.POST("", r.supplierHandler.Create)
		suppliersGroup.GET("/export", r.supplierHandler.Export)
		suppliersGroup.POST("/import", r.supplierHandler.Import)
		suppliersGroup.GET("/:id", r.supplierHandler.Get)
		suppliersGroup.PUT("/:id", r.supplierHandler.Update)
		suppliersGroup.GET("/:id/logs", r.supplierHandler.Logs)
	}

	promosGroup := apiV1.Group("/promos")
	{
		promosGroup.GET("", r.promoHandler.List)
		promosGroup.POST("", r.promoHandler.Save)
		promosGroup.GET("/stats", r.promoHandler.Stats)
		promosGroup.GET("/export", r.promoHandler.Export)
		promosGroup.POST("/import", r.promoHandler.Import)
		promosGroup.GET("/:code", r.promoHandler.Get)
		promosGroup.PUT("/:code", r.promoHandler.Update)
		promosGroup.GET("/:code/logs", r.promoHandler.Logs)
		promosGroup.POST("/:code/redemptions", r.promoHandler.RecordRedemption)
	}

	vouchersGroup := apiV1.Group("/vouchers")
	{
		vouchersGroup.GET("", r.voucherHandler.List)
		vouchersGroup.POST("", r.voucherHandler.Save)
		vouchersGroup.GET("/summary", r.voucherHandler.Summary)
		vouchersGroup.POST("/lookup", r.voucherHandler.Lookup)
		vouchersGroup.GET("/export", r.voucherHandler.Export)
		vouchersGroup.POST("/import", r.voucherHandler.Import)
		vouchersGroup.GET("/:id", r.voucherHandler.Get)
		vouchersGroup.PUT("/:id", r.voucherHandler.Update)
		vouchersGroup.GET("/:id/qr", r.voucherHandler.QRCode)
		vouchersGroup.GET("/:id/logs", r.voucherHandler.Logs)
	}

	rewardRulesGroup := apiV1.Group("/reward-rules")
	{
		rewardRulesGroup.GET("", r.rewardHandler.ListRules)
		rewardRulesGroup.POST("", r.rewardHandler.SaveRule)
		rewardRulesGroup.GET("/export", r.rewardHandler.Export)
		rewardRulesGroup.GET("/:id", r.rewardHandler.GetRule)
		rewardRulesGroup.PUT("/:id", r.rewardHandler.UpdateRule)
		rewardRulesGroup.GET("/:id/logs", r.rewardHandler.Logs)
	}

	conversionRatesGroup := apiV1.Group("/conversion-rates")
	{
		conversionRatesGroup.POST("", r.rewardHandler.SaveConversionRate)
		conversionRatesGroup.GET("/latest", r.rewardHandler.LatestConversionRate)
	}

	ledgerGroup := apiV1.Group("/ledger")
	{
		ledgerGroup.GET("", r.ledgerHandler.List)
		ledgerGroup.POST("", r.ledgerHandler.Add)
		ledgerGroup.GET("/export", r.ledgerHandler.Export)
		ledgerGroup.GET("/:id", r.ledgerHandler.Get)
		ledgerGroup.PATCH("/:id/notes", r.ledgerHandler.UpdateNotes)
		ledgerGroup.GET("/:id/logs", r.ledgerHandler.Logs)
	}
}

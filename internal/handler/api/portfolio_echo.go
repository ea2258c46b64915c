package api

import (
	models "StockSense/internal/domain/models"
	"StockSense/internal/usecase"
	xhttp "StockSense/pkg/http"
	"StockSense/pkg/http/middleware"
	xlogger "StockSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioEchoHandler serves the per-user portfolio, alerts and dashboard summary.
// Every route requires the X-User-ID header.
type PortfolioEchoHandler struct {
	logger    *xlogger.Logger
	portfolio *usecase.PortfolioUseCase
	alerts    *usecase.AlertsUseCase
	dashboard *usecase.DashboardUseCase
}

func NewPortfolioEchoHandler(logger *xlogger.Logger, portfolio *usecase.PortfolioUseCase, alerts *usecase.AlertsUseCase, dashboard *usecase.DashboardUseCase) *PortfolioEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PortfolioEchoHandler{logger: logger, portfolio: portfolio, alerts: alerts, dashboard: dashboard}
}

func (h *PortfolioEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	auth := middleware.RequireUser()

	g.POST("/portfolio/add", h.AddHolding, auth)
	g.GET("/portfolio", h.Portfolio, auth)
	g.DELETE("/portfolio/:id", h.RemoveHolding, auth)

	g.POST("/alerts", h.CreateAlert, auth)
	g.GET("/alerts", h.Alerts, auth)
	g.DELETE("/alerts/:id", h.DeleteAlert, auth)
	g.PATCH("/alerts/:id/toggle", h.ToggleAlert, auth)

	g.GET("/dashboard/summary", h.Summary, auth)
}

func (h *PortfolioEchoHandler) AddHolding(c echo.Context) error {
	req := &models.AddHoldingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	id, err := h.portfolio.Add(c.Request().Context(), middleware.UserID(c), *req)
	if err != nil {
		return errorResponse(c, h.logger, "portfolio.add", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"id": id, "message": "Stock added to portfolio"})
}

func (h *PortfolioEchoHandler) Portfolio(c echo.Context) error {
	view, err := h.portfolio.View(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, h.logger, "portfolio.view", err)
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *PortfolioEchoHandler) RemoveHolding(c echo.Context) error {
	req := &models.IDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.portfolio.Remove(c.Request().Context(), middleware.UserID(c), req.ID); err != nil {
		return errorResponse(c, h.logger, "portfolio.remove", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": "Stock removed from portfolio"})
}

func (h *PortfolioEchoHandler) CreateAlert(c echo.Context) error {
	req := &models.CreateAlertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	a, err := h.alerts.Create(c.Request().Context(), middleware.UserID(c), *req)
	if err != nil {
		return errorResponse(c, h.logger, "alerts.create", err)
	}
	return xhttp.SuccessResponse(c, a)
}

func (h *PortfolioEchoHandler) Alerts(c echo.Context) error {
	list, err := h.alerts.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, h.logger, "alerts.list", err)
	}
	return xhttp.SuccessResponse(c, list)
}

func (h *PortfolioEchoHandler) DeleteAlert(c echo.Context) error {
	req := &models.IDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.alerts.Delete(c.Request().Context(), middleware.UserID(c), req.ID); err != nil {
		return errorResponse(c, h.logger, "alerts.delete", err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"message": "Alert deleted"})
}

func (h *PortfolioEchoHandler) ToggleAlert(c echo.Context) error {
	req := &models.IDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	active, err := h.alerts.Toggle(c.Request().Context(), middleware.UserID(c), req.ID)
	if err != nil {
		return errorResponse(c, h.logger, "alerts.toggle", err)
	}
	return xhttp.SuccessResponse(c, map[string]bool{"is_active": active})
}

func (h *PortfolioEchoHandler) Summary(c echo.Context) error {
	s, err := h.dashboard.Summary(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errorResponse(c, h.logger, "dashboard.summary", err)
	}
	return xhttp.SuccessResponse(c, s)
}

package api

import (
	"strings"
	"time"

	models "StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	"StockSense/internal/service/ratelimit"
	"StockSense/internal/usecase"
	xhttp "StockSense/pkg/http"
	xlogger "StockSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StocksEchoHandler serves market data, predictions and search.
type StocksEchoHandler struct {
	logger    *xlogger.Logger
	stocks    *usecase.StocksUseCase
	predictor *usecase.Predictor
	search    *usecase.SearchUseCase
	dashboard *usecase.DashboardUseCase
	limiter   *ratelimit.Limiter
	rl        RateLimitConfig
	now       func() time.Time
}

func NewStocksEchoHandler(
	logger *xlogger.Logger,
	stocks *usecase.StocksUseCase,
	predictor *usecase.Predictor,
	search *usecase.SearchUseCase,
	dashboard *usecase.DashboardUseCase,
	limiter *ratelimit.Limiter,
	rl RateLimitConfig,
) *StocksEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	if limiter == nil {
		limiter = ratelimit.New()
	}
	return &StocksEchoHandler{
		logger:    logger,
		stocks:    stocks,
		predictor: predictor,
		search:    search,
		dashboard: dashboard,
		limiter:   limiter,
		rl:        rl,
		now:       time.Now,
	}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/stocks/search", h.Search)
	g.GET("/stocks/:symbol", h.Details)
	g.GET("/stocks/:symbol/predictions", h.Predictions, RateLimit(h.limiter, h.rl, "predictions", h.logger))
	g.GET("/market/trending", h.Trending)
	g.GET("/dashboard/predictions", h.DashboardPredictions)
}

func (h *StocksEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "healthy"})
}

func (h *StocksEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.search.Search(req.Q))
}

func (h *StocksEchoHandler) Details(c echo.Context) error {
	req := &models.StockDetailsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.stocks.Details(c.Request().Context(), req.Symbol, domrepo.NormalizePeriod(req.Period))
	if err != nil {
		return errorResponse(c, h.logger, "details", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) Predictions(c echo.Context) error {
	req := &models.SymbolRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	bundle, err := h.predictor.Predict(c.Request().Context(), symbol)
	if err != nil {
		return errorResponse(c, h.logger, "predictions", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, &models.PredictionResponse{
		Symbol:      symbol,
		Predictions: bundle,
		GeneratedAt: h.now().UTC(),
	})
}

func (h *StocksEchoHandler) Trending(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.stocks.Trending(c.Request().Context()))
}

func (h *StocksEchoHandler) DashboardPredictions(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.dashboard.Predictions(c.Request().Context()))
}

package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	"StockSense/internal/repository"
	"StockSense/internal/service/cache"
	"StockSense/internal/service/ratelimit"
	"StockSense/internal/services/features"
	"StockSense/internal/services/forecast"
	"StockSense/internal/services/risk"
	"StockSense/internal/usecase"
	xhttp "StockSense/pkg/http"
	"StockSense/pkg/http/middleware"
	"StockSense/pkg/workpool"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu     sync.Mutex
	series map[string]models.Series
}

func (f *fakeProvider) History(_ context.Context, ticker string, _ domrepo.Period) (models.Series, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.series[ticker], nil
}

type staticCatalog []models.Listing

func (c staticCatalog) Listings() []models.Listing { return c }

func wavySeries(n int, level float64) models.Series {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	for i := range s {
		c := level + 0.25*float64(i) + 6*math.Sin(float64(i)*0.4) + 2*math.Cos(float64(i)*1.7)
		s[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: c - 1, High: c + 3, Low: c - 3, Close: c, Volume: 1e6}
	}
	return s
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, rl RateLimitConfig) *echo.Echo {
	t.Helper()
	provider := &fakeProvider{series: map[string]models.Series{
		"RELIANCE.NS": wavySeries(260, 2800),
		"TCS.BO":      wavySeries(260, 3900),
		"SHORT.NS":    wavySeries(30, 100),
	}}
	market, err := cache.NewMarketDataCache(provider, 30*time.Minute)
	require.NoError(t, err)
	preds, err := cache.NewPredictionCache(time.Hour)
	require.NoError(t, err)
	quotes, err := cache.NewQuoteCache(15 * time.Minute)
	require.NoError(t, err)

	predictor := usecase.NewPredictor(market, preds, features.NewEngine(), forecast.NewModel(forecast.WithTrees(5)),
		workpool.New(workpool.WithSize(2)), domrepo.Period2Y, nil, nil)
	stocks := usecase.NewStocksUseCase(market, quotes, risk.NewScorer(), []string{"RELIANCE", "MISSING", "TCS"}, domrepo.Period5D, nil)
	search := usecase.NewSearchUseCase(staticCatalog{
		{Symbol: "RELIANCE", Name: "Reliance Industries Limited"},
		{Symbol: "TCS", Name: "Tata Consultancy Services Limited"},
	})
	store := repository.NewMemoryStore()
	portfolio := usecase.NewPortfolioUseCase(store, stocks)
	alerts := usecase.NewAlertsUseCase(store)
	dashboard := usecase.NewDashboardUseCase(predictor, portfolio, alerts, []string{"RELIANCE", "SHORT", "TCS"})

	e := echo.New()
	xhttp.Handlers{
		NewStocksEchoHandler(nil, stocks, predictor, search, dashboard, ratelimit.New(), rl),
		NewPortfolioEchoHandler(nil, portfolio, alerts, dashboard),
		NewTrendingStream(nil, stocks, 50*time.Millisecond),
	}.RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body, user string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set(middleware.HeaderUserID, user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

var generous = RateLimitConfig{Capacity: 100, RefillPerSec: 1}

func TestHealth(t *testing.T) {
	e := newTestServer(t, generous)
	rec, env := do(t, e, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, string(env.Data))
}

func TestPredictionsEndpoint(t *testing.T) {
	e := newTestServer(t, generous)

	rec, env := do(t, e, http.MethodGet, "/api/stocks/reliance/predictions", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 200, env.Status)

	var res models.PredictionResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "RELIANCE", res.Symbol)
	assert.Len(t, res.Predictions, 4)
	assert.Equal(t, time.UTC, res.GeneratedAt.Location())

	rec, env = do(t, e, http.MethodGet, "/api/stocks/UNKNOWN/predictions", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 404, env.Status)

	rec, _ = do(t, e, http.MethodGet, "/api/stocks/SHORT/predictions", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPredictionsRateLimited(t *testing.T) {
	e := newTestServer(t, RateLimitConfig{Capacity: 2, RefillPerSec: 0})

	for i := 0; i < 2; i++ {
		rec, _ := do(t, e, http.MethodGet, "/api/stocks/UNKNOWN/predictions", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	rec, env := do(t, e, http.MethodGet, "/api/stocks/UNKNOWN/predictions", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 429, env.Status)

	// other routes are not throttled
	rec, _ = do(t, e, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDetailsEndpoint(t *testing.T) {
	e := newTestServer(t, generous)

	rec, env := do(t, e, http.MethodGet, "/api/stocks/TCS?period=2y", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var d models.StockDetails
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "TCS", d.Symbol)
	assert.Len(t, d.ChartData, 250)

	rec, env = do(t, e, http.MethodGet, "/api/stocks/TCS?period=3w", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var verrs []xhttp.ValidationError
	require.NoError(t, json.Unmarshal(env.Data, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "period", verrs[0].Field)
	assert.Equal(t, "ERR_ONEOF", verrs[0].Code)

	rec, _ = do(t, e, http.MethodGet, "/api/stocks/NOPE", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	e := newTestServer(t, generous)

	rec, env := do(t, e, http.MethodGet, "/api/stocks/search?q=tata", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"symbol":"TCS","name":"Tata Consultancy Services Limited"}]`, string(env.Data))

	rec, _ = do(t, e, http.MethodGet, "/api/stocks/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrendingAndDashboardPredictions(t *testing.T) {
	e := newTestServer(t, generous)

	rec, env := do(t, e, http.MethodGet, "/api/market/trending", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var quotes []models.TrendingQuote
	require.NoError(t, json.Unmarshal(env.Data, &quotes))
	require.Len(t, quotes, 2)
	assert.Equal(t, "RELIANCE", quotes[0].Symbol)
	assert.Equal(t, "TCS", quotes[1].Symbol)

	rec, env = do(t, e, http.MethodGet, "/api/dashboard/predictions", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var preds []models.SymbolPredictions
	require.NoError(t, json.Unmarshal(env.Data, &preds))
	require.Len(t, preds, 2)
	assert.Equal(t, "RELIANCE", preds[0].Symbol)
	assert.Equal(t, "TCS", preds[1].Symbol)
}

func TestPortfolioRoutes(t *testing.T) {
	e := newTestServer(t, generous)

	rec, _ := do(t, e, http.MethodGet, "/api/portfolio", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := do(t, e, http.MethodPost, "/api/portfolio/add", `{"symbol":"reliance","quantity":10,"buy_price":2500,"buy_date":"2024-05-01"}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var added struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.NotEmpty(t, added.ID)

	rec, _ = do(t, e, http.MethodPost, "/api/portfolio/add", `{"symbol":"TCS","quantity":0,"buy_price":10}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, e, http.MethodGet, "/api/portfolio", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var view models.PortfolioView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, "RELIANCE", view.Items[0].Symbol)
	assert.Equal(t, "2024-05-01", view.Items[0].BuyDate)
	assert.Equal(t, 25000.0, view.Summary.TotalInvested)
	require.Len(t, view.Allocation, 1)
	assert.Equal(t, 100.0, view.Allocation[0].Percentage)

	// another user sees nothing and cannot delete
	rec, env = do(t, e, http.MethodGet, "/api/portfolio", "", "u2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Items)
	rec, _ = do(t, e, http.MethodDelete, "/api/portfolio/"+added.ID, "", "u2")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/api/portfolio/"+added.ID, "", "u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, e, http.MethodDelete, "/api/portfolio/"+added.ID, "", "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodDelete, "/api/portfolio/not-a-uuid", "", "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertRoutes(t *testing.T) {
	e := newTestServer(t, generous)

	rec, env := do(t, e, http.MethodPost, "/api/alerts", `{"symbol":"tcs","threshold":4000}`, "u1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var a models.Alert
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, "TCS", a.Symbol)
	assert.Equal(t, models.AlertPriceAbove, a.AlertType)
	assert.True(t, a.EmailEnabled)
	assert.True(t, a.IsActive)

	rec, _ = do(t, e, http.MethodPost, "/api/alerts", `{"symbol":"tcs","alert_type":"sideways","threshold":1}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, e, http.MethodPatch, "/api/alerts/"+a.ID+"/toggle", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_active":false}`, string(env.Data))

	rec, env = do(t, e, http.MethodGet, "/api/dashboard/summary", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var s models.DashboardSummary
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.Equal(t, 0, s.AlertsActive)
	assert.Equal(t, 0, s.Portfolio.HoldingsCount)

	rec, env = do(t, e, http.MethodGet, "/api/alerts", "", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Alert
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	rec, _ = do(t, e, http.MethodDelete, "/api/alerts/"+a.ID, "", "u1")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, e, http.MethodPatch, "/api/alerts/"+a.ID+"/toggle", "", "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrendingStream(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, generous))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream/trending"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 2; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var env envelope
		require.NoError(t, conn.ReadJSON(&env))
		assert.Equal(t, 200, env.Status)

		var quotes []models.TrendingQuote
		require.NoError(t, json.Unmarshal(env.Data, &quotes))
		assert.Len(t, quotes, 2)
	}
}

package usecase

import (
	"context"

	"StockSense/internal/domain/models"
)

// DashboardUseCase assembles the dashboard views.
type DashboardUseCase struct {
	predictor *Predictor
	portfolio *PortfolioUseCase
	alerts    *AlertsUseCase
	watchlist []string
}

func NewDashboardUseCase(predictor *Predictor, portfolio *PortfolioUseCase, alerts *AlertsUseCase, watchlist []string) *DashboardUseCase {
	return &DashboardUseCase{predictor: predictor, portfolio: portfolio, alerts: alerts, watchlist: watchlist}
}

// Predictions forecasts the dashboard watchlist; symbols that fail are dropped.
func (uc *DashboardUseCase) Predictions(ctx context.Context) []models.SymbolPredictions {
	return uc.predictor.PredictMany(ctx, uc.watchlist)
}

// Summary returns portfolio totals and the active alert count for userID.
func (uc *DashboardUseCase) Summary(ctx context.Context, userID string) (*models.DashboardSummary, error) {
	totals, err := uc.portfolio.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := uc.alerts.ActiveCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.DashboardSummary{Portfolio: totals, AlertsActive: active}, nil
}

// Watchlist returns the symbols the dashboard forecasts.
func (uc *DashboardUseCase) Watchlist() []string { return uc.watchlist }

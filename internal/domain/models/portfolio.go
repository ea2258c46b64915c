package models

import "time"

// Holding is a stored portfolio position.
type Holding struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	BuyPrice  float64   `json:"buy_price"`
	BuyDate   string    `json:"buy_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Position is a holding valued at the current price.
type Position struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	BuyPrice     float64 `json:"buy_price"`
	BuyDate      string  `json:"buy_date"`
	CurrentPrice float64 `json:"current_price"`
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"current_value"`
	PnL          float64 `json:"pnl"`
	PnLPercent   float64 `json:"pnl_percent"`
}

// PortfolioSummary totals every position.
type PortfolioSummary struct {
	TotalInvested   float64 `json:"total_invested"`
	TotalCurrent    float64 `json:"total_current"`
	TotalPnL        float64 `json:"total_pnl"`
	TotalPnLPercent float64 `json:"total_pnl_percent"`
}

// Allocation is one symbol's share of current value.
type Allocation struct {
	Symbol     string  `json:"symbol"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PortfolioView is the valued portfolio returned to the client.
type PortfolioView struct {
	Items      []Position       `json:"items"`
	Summary    PortfolioSummary `json:"summary"`
	Allocation []Allocation     `json:"allocation"`
}

// DashboardPortfolio is the portfolio block of the dashboard summary.
type DashboardPortfolio struct {
	TotalInvested float64 `json:"total_invested"`
	TotalCurrent  float64 `json:"total_current"`
	TotalPnL      float64 `json:"total_pnl"`
	PnLPercent    float64 `json:"pnl_percent"`
	HoldingsCount int     `json:"holdings_count"`
}

// DashboardSummary is the per-user dashboard header.
type DashboardSummary struct {
	Portfolio    DashboardPortfolio `json:"portfolio"`
	AlertsActive int                `json:"alerts_active"`
}

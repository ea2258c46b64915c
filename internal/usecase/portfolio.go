package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"StockSense/internal/domain/models"
	domrepo "StockSense/internal/domain/repository"
	"StockSense/pkg/util"

	"github.com/google/uuid"
)

const portfolioCollection = "portfolio"

// PriceSource returns the latest close for a symbol, or false without data.
type PriceSource interface {
	LastPrice(ctx context.Context, symbol string) (float64, bool)
}

type PortfolioUseCase struct {
	store  domrepo.RecordStore
	prices PriceSource
	now    func() time.Time
}

func NewPortfolioUseCase(store domrepo.RecordStore, prices PriceSource) *PortfolioUseCase {
	return &PortfolioUseCase{store: store, prices: prices, now: time.Now}
}

// Add stores a new holding for userID and returns its id. The buy date accepts
// YYYY-MM-DD, RFC3339 or unix seconds and defaults to today.
func (uc *PortfolioUseCase) Add(ctx context.Context, userID string, req models.AddHoldingRequest) (string, error) {
	now := uc.now().UTC()
	h := models.Holding{
		ID:        uuid.NewString(),
		UserID:    userID,
		Symbol:    strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Quantity:  req.Quantity,
		BuyPrice:  req.BuyPrice,
		BuyDate:   util.FormatDate(util.ParseTimeDefault(req.BuyDate, now)),
		CreatedAt: now,
	}
	if err := uc.store.Put(ctx, portfolioCollection, userID, h.ID, h); err != nil {
		return "", fmt.Errorf("add holding: %w", err)
	}
	return h.ID, nil
}

// Remove deletes one holding; repository.ErrNotFound when it is not the user's.
func (uc *PortfolioUseCase) Remove(ctx context.Context, userID, id string) error {
	if err := uc.store.Delete(ctx, portfolioCollection, userID, id); err != nil {
		return fmt.Errorf("remove holding %s: %w", id, err)
	}
	return nil
}

// Holdings lists userID's holdings, oldest first.
func (uc *PortfolioUseCase) Holdings(ctx context.Context, userID string) ([]models.Holding, error) {
	raws, err := uc.store.List(ctx, portfolioCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	out := make([]models.Holding, 0, len(raws))
	for _, raw := range raws {
		var h models.Holding
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("decode holding: %w", err)
		}
		out = append(out, h)
	}
	slices.SortStableFunc(out, func(a, b models.Holding) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

type valuation struct {
	holding  models.Holding
	price    float64
	invested float64
	current  float64
}

// value prices every holding concurrently. A symbol without data is valued at
// its buy price.
func (uc *PortfolioUseCase) value(ctx context.Context, holdings []models.Holding) []valuation {
	keys := make([]string, len(holdings))
	byID := make(map[string]models.Holding, len(holdings))
	for i, h := range holdings {
		keys[i] = h.ID
		byID[h.ID] = h
	}
	results := Fanout(ctx, keys, func(ctx context.Context, id string) (valuation, error) {
		h := byID[id]
		price, ok := uc.prices.LastPrice(ctx, h.Symbol)
		if !ok {
			price = h.BuyPrice
		}
		return valuation{
			holding:  h,
			price:    price,
			invested: h.Quantity * h.BuyPrice,
			current:  h.Quantity * price,
		}, nil
	})
	return Successes(results)
}

// View values userID's portfolio with per-position P&L, totals and allocation.
func (uc *PortfolioUseCase) View(ctx context.Context, userID string) (*models.PortfolioView, error) {
	holdings, err := uc.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.PortfolioView{
		Items:      make([]models.Position, 0, len(holdings)),
		Allocation: make([]models.Allocation, 0, len(holdings)),
	}
	var totalInvested, totalCurrent float64
	for _, v := range uc.value(ctx, holdings) {
		pnl := v.current - v.invested
		p := models.Position{
			ID:           v.holding.ID,
			Symbol:       v.holding.Symbol,
			Quantity:     v.holding.Quantity,
			BuyPrice:     v.holding.BuyPrice,
			BuyDate:      v.holding.BuyDate,
			CurrentPrice: util.Round2(v.price),
			Invested:     util.Round2(v.invested),
			CurrentValue: util.Round2(v.current),
			PnL:          util.Round2(pnl),
			PnLPercent:   util.Round2(percentOf(pnl, v.invested)),
		}
		view.Items = append(view.Items, p)
		totalInvested += p.Invested
		totalCurrent += p.CurrentValue
	}

	totalPnL := totalCurrent - totalInvested
	view.Summary = models.PortfolioSummary{
		TotalInvested:   util.Round2(totalInvested),
		TotalCurrent:    util.Round2(totalCurrent),
		TotalPnL:        util.Round2(totalPnL),
		TotalPnLPercent: util.Round2(percentOf(totalPnL, totalInvested)),
	}
	for _, p := range view.Items {
		view.Allocation = append(view.Allocation, models.Allocation{
			Symbol:     p.Symbol,
			Value:      p.CurrentValue,
			Percentage: util.Round(percentOf(p.CurrentValue, totalCurrent), 1),
		})
	}
	return view, nil
}

// Totals returns the dashboard portfolio block for userID.
func (uc *PortfolioUseCase) Totals(ctx context.Context, userID string) (models.DashboardPortfolio, error) {
	holdings, err := uc.Holdings(ctx, userID)
	if err != nil {
		return models.DashboardPortfolio{}, err
	}
	var invested, current float64
	for _, v := range uc.value(ctx, holdings) {
		invested += v.invested
		current += v.current
	}
	return models.DashboardPortfolio{
		TotalInvested: util.Round2(invested),
		TotalCurrent:  util.Round2(current),
		TotalPnL:      util.Round2(current - invested),
		PnLPercent:    util.Round2(percentOf(current-invested, invested)),
		HoldingsCount: len(holdings),
	}, nil
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

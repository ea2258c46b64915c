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

	"github.com/google/uuid"
)

const alertsCollection = "alerts"

type AlertsUseCase struct {
	store domrepo.RecordStore
	now   func() time.Time
}

func NewAlertsUseCase(store domrepo.RecordStore) *AlertsUseCase {
	return &AlertsUseCase{store: store, now: time.Now}
}

// Create stores an active alert for userID.
func (uc *AlertsUseCase) Create(ctx context.Context, userID string, req models.CreateAlertRequest) (models.Alert, error) {
	email := true
	if req.EmailEnabled != nil {
		email = *req.EmailEnabled
	}
	a := models.Alert{
		ID:           uuid.NewString(),
		UserID:       userID,
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		AlertType:    models.AlertType(req.AlertType),
		Threshold:    req.Threshold,
		EmailEnabled: email,
		IsActive:     true,
		CreatedAt:    uc.now().UTC(),
	}
	if a.AlertType == "" {
		a.AlertType = models.AlertPriceAbove
	}
	if err := uc.store.Put(ctx, alertsCollection, userID, a.ID, a); err != nil {
		return models.Alert{}, fmt.Errorf("create alert: %w", err)
	}
	return a, nil
}

// List returns userID's alerts, oldest first.
func (uc *AlertsUseCase) List(ctx context.Context, userID string) ([]models.Alert, error) {
	raws, err := uc.store.List(ctx, alertsCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	out := make([]models.Alert, 0, len(raws))
	for _, raw := range raws {
		var a models.Alert
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("decode alert: %w", err)
		}
		out = append(out, a)
	}
	slices.SortStableFunc(out, func(a, b models.Alert) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (uc *AlertsUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.store.Delete(ctx, alertsCollection, userID, id); err != nil {
		return fmt.Errorf("delete alert %s: %w", id, err)
	}
	return nil
}

// Toggle flips is_active and returns the new state.
func (uc *AlertsUseCase) Toggle(ctx context.Context, userID, id string) (bool, error) {
	var a models.Alert
	if err := uc.store.Get(ctx, alertsCollection, userID, id, &a); err != nil {
		return false, fmt.Errorf("toggle alert %s: %w", id, err)
	}
	a.IsActive = !a.IsActive
	if err := uc.store.Put(ctx, alertsCollection, userID, id, a); err != nil {
		return false, fmt.Errorf("toggle alert %s: %w", id, err)
	}
	return a.IsActive, nil
}

// ActiveCount counts userID's active alerts.
func (uc *AlertsUseCase) ActiveCount(ctx context.Context, userID string) (int, error) {
	alerts, err := uc.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range alerts {
		if a.IsActive {
			n++
		}
	}
	return n, nil
}

package models

import "time"

// AlertType is the price condition an alert watches.
type AlertType string

const (
	AlertPriceAbove AlertType = "price_above"
	AlertPriceBelow AlertType = "price_below"
)

// Alert is a stored price alert.
type Alert struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Symbol       string    `json:"symbol"`
	AlertType    AlertType `json:"alert_type"`
	Threshold    float64   `json:"threshold"`
	EmailEnabled bool      `json:"email_enabled"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

// StockDetailsRequest binds GET /api/stocks/:symbol.
type StockDetailsRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
	Period string `query:"period" default:"1y" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
}

// SymbolRequest binds any route keyed by :symbol.
type SymbolRequest struct {
	Symbol string `param:"symbol" validate:"required,max=32"`
}

// SearchRequest binds GET /api/stocks/search.
type SearchRequest struct {
	Q string `query:"q" validate:"required,max=64"`
}

// AddHoldingRequest binds POST /api/portfolio/add.
type AddHoldingRequest struct {
	Symbol   string  `json:"symbol" validate:"required,max=32"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
	BuyPrice float64 `json:"buy_price" validate:"gte=0"`
	BuyDate  string  `json:"buy_date" validate:"omitempty,max=40"`
}

// CreateAlertRequest binds POST /api/alerts.
type CreateAlertRequest struct {
	Symbol       string  `json:"symbol" validate:"required,max=32"`
	AlertType    string  `json:"alert_type" default:"price_above" validate:"oneof=price_above price_below"`
	Threshold    float64 `json:"threshold" validate:"gt=0"`
	EmailEnabled *bool   `json:"email_enabled" default:"true"`
}

// IDRequest binds routes keyed by :id.
type IDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

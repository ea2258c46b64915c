package models

// ChartBar is a bar as served to charts.
type ChartBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockDetails is the quote, range, risk, and recent chart for a symbol.
type StockDetails struct {
	Symbol        string      `json:"symbol"`
	CurrentPrice  float64     `json:"current_price"`
	Change        float64     `json:"change"`
	ChangePercent float64     `json:"change_percent"`
	High52W       float64     `json:"high_52w"`
	Low52W        float64     `json:"low_52w"`
	Volume        int64       `json:"volume"`
	AvgVolume     int64       `json:"avg_volume"`
	Risk          RiskProfile `json:"risk"`
	ChartData     []ChartBar  `json:"chart_data"`
}

// TrendingQuote is a watchlist entry.
type TrendingQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// Listing is a catalog entry used by search.
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

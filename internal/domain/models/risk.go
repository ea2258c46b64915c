package models

// RiskLevel buckets annualised volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskProfile summarises a return series. Volatility and MaxDrawdown are percentages.
type RiskProfile struct {
	Volatility  float64   `json:"volatility"`
	SharpeRatio float64   `json:"sharpe_ratio"`
	MaxDrawdown float64   `json:"max_drawdown"`
	RiskLevel   RiskLevel `json:"risk_level"`
	RiskScore   int       `json:"risk_score"`
}

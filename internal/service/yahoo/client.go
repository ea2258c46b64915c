package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockSense/internal/domain/models"
	drepo "StockSense/internal/domain/repository"
	xhttp "StockSense/pkg/http"

	"github.com/tidwall/gjson"
)

// Client implements MarketDataProvider against the Yahoo Finance chart API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates a chart API client. Throttling and upstream 5xx are retried twice.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithHeader("User-Agent", userAgent),
			xhttp.WithRetry(3, 250*time.Millisecond),
		),
	}
}

// History fetches daily bars for ticker. Yahoo answers an unknown ticker with 404;
// that is reported as an empty series.
func (c *Client) History(ctx context.Context, ticker string, period drepo.Period) (models.Series, error) {
	body, err := c.http.Get(ctx,
		fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker)),
		url.Values{"interval": {"1d"}, "range": {string(period)}},
	)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo: chart %s: %w", ticker, err)
	}
	return parseChart(body, ticker)
}

// parseChart reads chart.result[0]. Bars with a missing or non-positive close are
// skipped; a missing open/high/low falls back to the close.
func parseChart(body []byte, ticker string) (models.Series, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo: invalid json for %s", ticker)
	}
	if e := gjson.GetBytes(body, "chart.error"); e.Exists() && e.Type != gjson.Null {
		if strings.EqualFold(e.Get("code").String(), "Not Found") {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo: %s: %s", ticker, e.Get("description").String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, nil
	}
	stamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	offset := result.Get("meta.gmtoffset").Int()

	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	out := make(models.Series, 0, len(stamps))
	for i, ts := range stamps {
		if i >= len(closes) || closes[i].Type != gjson.Number {
			continue
		}
		cl := closes[i].Float()
		if cl <= 0 {
			continue
		}
		local := time.Unix(ts.Int()+offset, 0).UTC()
		out = append(out, models.Bar{
			Date:   time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
			Open:   valueOr(opens, i, cl),
			High:   valueOr(highs, i, cl),
			Low:    valueOr(lows, i, cl),
			Close:  cl,
			Volume: valueOr(volumes, i, 0),
		})
	}
	return out, nil
}

func valueOr(xs []gjson.Result, i int, def float64) float64 {
	if i < len(xs) && xs[i].Type == gjson.Number {
		return xs[i].Float()
	}
	return def
}

var _ drepo.MarketDataProvider = (*Client)(nil)

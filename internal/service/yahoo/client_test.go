package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "StockSense/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"RELIANCE.NS","gmtoffset":19800},
"timestamp":[1735789500,1735875900,1735962300,1736221500],
"indicators":{"quote":[{"open":[1210.0,1222.5,null,1240.0],
"high":[1225.0,1230.0,null,1251.5],
"low":[1205.5,1215.0,null,1233.0],
"close":[1220.4,1228.9,null,1249.75],
"volume":[8123400,9011200,null,7600100]}]}}],"error":null}}`

func TestHistoryParsesChart(t *testing.T) {
	var gotPath, gotRange, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	c := New(srv.URL, "stocksense-test", 5*time.Second)
	series, err := c.History(context.Background(), "RELIANCE.NS", drepo.Period2Y)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)
	assert.Equal(t, "2y", gotRange)
	assert.Equal(t, "stocksense-test", gotUA)

	require.Len(t, series, 3, "null close skipped")
	assert.Equal(t, 1220.4, series[0].Close)
	assert.Equal(t, 8123400.0, series[0].Volume)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, 1249.75, series.Last().Close)
	assert.Equal(t, 1251.5, series.Last().High)
}

func TestHistoryNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	series, err := New(srv.URL, "ua", time.Second).History(context.Background(), "NOPE.NS", drepo.Period1Y)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestHistoryServerErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "ua", time.Second).History(context.Background(), "TCS.NS", drepo.Period1Y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yahoo: chart TCS.NS")
}

func TestParseChartRejectsGarbage(t *testing.T) {
	_, err := parseChart([]byte("<html>"), "X")
	assert.Error(t, err)

	series, err := parseChart([]byte(`{"chart":{"result":[],"error":null}}`), "X")
	require.NoError(t, err)
	assert.Empty(t, series)
}

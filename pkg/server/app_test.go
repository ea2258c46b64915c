package server

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"StockSense/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeCountingStore struct{ closed atomic.Int32 }

func (s *closeCountingStore) Put(context.Context, string, string, string, any) error { return nil }
func (s *closeCountingStore) Get(context.Context, string, string, string, any) error { return nil }
func (s *closeCountingStore) Delete(context.Context, string, string, string) error   { return nil }
func (s *closeCountingStore) List(context.Context, string, string) ([]json.RawMessage, error) {
	return nil, nil
}
func (s *closeCountingStore) Close() error {
	s.closed.Add(1)
	return nil
}

type routes struct{ registered atomic.Bool }

func (r *routes) RegisterRoutes(*echo.Echo) { r.registered.Store(true) }

func TestRunContextShutsDownAndClosesStore(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Server.Port = 0
	cfg.Metrics.Enabled = false

	store := &closeCountingStore{}
	h := &routes{}
	app := New(cfg, nil, h, nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, h.registered.Load())
	assert.Equal(t, int32(1), store.closed.Load())
}

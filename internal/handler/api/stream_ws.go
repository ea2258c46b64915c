package api

import (
	"context"
	"net/http"
	"time"

	"StockSense/internal/usecase"
	xhttp "StockSense/pkg/http"
	xlogger "StockSense/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const streamWriteWait = 10 * time.Second

// TrendingStream pushes the trending watchlist to WebSocket clients on an interval.
type TrendingStream struct {
	logger   *xlogger.Logger
	stocks   *usecase.StocksUseCase
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewTrendingStream(logger *xlogger.Logger, stocks *usecase.StocksUseCase, interval time.Duration) *TrendingStream {
	if logger == nil {
		logger = xlogger.Nop()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &TrendingStream{
		logger:   logger,
		stocks:   stocks,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *TrendingStream) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/stream/trending", s.Serve)
}

// Serve upgrades the request and pushes until the client disconnects.
func (s *TrendingStream) Serve(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied
		s.logger.Debug("stream upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// inbound frames are ignored; a read error means the client is gone
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("stream opened", xlogger.String("remote", c.RealIP()))
	for {
		if err := s.push(ctx, conn); err != nil {
			s.logger.Debug("stream closed", xlogger.String("remote", c.RealIP()), xlogger.Error(err))
			return nil
		}
		select {
		case <-ctx.Done():
			s.logger.Debug("stream closed", xlogger.String("remote", c.RealIP()))
			return nil
		case <-ticker.C:
		}
	}
}

func (s *TrendingStream) push(ctx context.Context, conn *websocket.Conn) error {
	quotes := s.stocks.Trending(ctx)
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(xhttp.APIResponse{
		Status:  http.StatusOK,
		Message: http.StatusText(http.StatusOK),
		Data:    quotes,
	})
}

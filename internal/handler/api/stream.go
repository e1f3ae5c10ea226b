package api

import (
	"net/http"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/usecase"
	xlogger "StockLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// StreamHandler pushes quote snapshots to websocket clients on a fixed
// interval. Each connection gets its own push loop; a client that asks
// for no symbols receives the tracked universe.
type StreamHandler struct {
	logger   *xlogger.Logger
	overview *usecase.OverviewUseCase
	symbols  []string
	interval time.Duration
	maxSyms  int
	upgrader websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, overview *usecase.OverviewUseCase, symbols []string, interval time.Duration, maxSymbols int) *StreamHandler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if maxSymbols <= 0 {
		maxSymbols = 20
	}
	return &StreamHandler{
		logger:   logger,
		overview: overview,
		symbols:  symbols,
		interval: interval,
		maxSyms:  maxSymbols,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type quotesFrame struct {
	Type      string         `json:"type"`
	Quotes    []models.Quote `json:"quotes"`
	Timestamp time.Time      `json:"timestamp"`
}

// Quotes upgrades the connection and streams snapshots until the client
// disconnects.
func (h *StreamHandler) Quotes(c echo.Context) error {
	symbols := h.requestedSymbols(c)

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	h.logger.Info("quote stream connected",
		xlogger.String("remote", conn.RemoteAddr().String()),
		xlogger.Int("symbols", len(symbols)))

	ctx := c.Request().Context()

	// Reader goroutine: drains control frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	if err := h.push(c, conn, symbols); err != nil {
		return nil
	}
	for {
		select {
		case <-done:
			h.logger.Info("quote stream disconnected",
				xlogger.String("remote", conn.RemoteAddr().String()))
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.push(c, conn, symbols); err != nil {
				h.logger.Warn("quote stream write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}

// requestedSymbols resolves the subscription list: comma-separated or
// repeated "symbols" query values, the tracked universe when absent,
// capped either way.
func (h *StreamHandler) requestedSymbols(c echo.Context) []string {
	var out []string
	for _, v := range c.QueryParams()["symbols"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		out = h.symbols
	}
	if len(out) > h.maxSyms {
		out = out[:h.maxSyms]
	}
	return out
}

func (h *StreamHandler) push(c echo.Context, conn *websocket.Conn, symbols []string) error {
	quotes := h.overview.Quotes(c.Request().Context(), symbols)
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(quotesFrame{
		Type:      "quotes",
		Quotes:    quotes,
		Timestamp: time.Now().UTC(),
	})
}

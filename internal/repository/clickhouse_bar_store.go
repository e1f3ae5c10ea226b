package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	pkgch "StockLens/pkg/clickhouse"
	applogger "StockLens/pkg/logger"
)

// BarSchema holds the idempotent DDL for the daily bar table.
// ReplacingMergeTree collapses duplicate (symbol, bucket) rows so
// re-fetching a window is safe.
var BarSchema = []string{
	`CREATE TABLE IF NOT EXISTS daily_bars (
        bucket  Date,
        symbol  LowCardinality(String),
        open    Float64,
        high    Float64,
        low     Float64,
        close   Float64,
        vol     Float64
    ) ENGINE = ReplacingMergeTree
    ORDER BY (symbol, bucket)`,
}

// CHBarStore implements BarStore backed by ClickHouse.
type CHBarStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.BarStore = (*CHBarStore)(nil)

func (s *CHBarStore) StoreBatch(ctx context.Context, bars []models.Candle) error {
	if len(bars) == 0 {
		return nil
	}

	// Multi-row VALUES insert, chunked to bound statement size.
	const chunkSize = 2000
	for start := 0; start < len(bars); start += chunkSize {
		end := start + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, b := range bars[start:end] {
			if b.Symbol == "" || b.Bucket.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, b.Bucket, b.Symbol, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		if len(values) == 0 {
			continue
		}

		q := fmt.Sprintf("INSERT INTO daily_bars (bucket, symbol, open, high, low, close, vol) VALUES %s",
			strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_bars error",
					applogger.Int("rows", len(values)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store bars: %w", err)
		}
	}

	if s.l != nil {
		s.l.Debug("clickhouse store_bars ok", applogger.Int("rows", len(bars)))
	}
	return nil
}

func (s *CHBarStore) LatestN(ctx context.Context, symbol string, n int) ([]models.Candle, error) {
	start := time.Now()
	const q = `
        SELECT bucket, symbol, open, high, low, close, vol
        FROM daily_bars FINAL
        WHERE symbol = ?
        ORDER BY bucket DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse latest_bars query error",
				applogger.String("symbol", symbol),
				applogger.Int("limit", n),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("latest bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, n)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Bucket, &c.Symbol, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	// DESC query, chronological result.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	if s.l != nil {
		s.l.Debug("clickhouse latest_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHBarStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHBarStore) Close() error {
	return nil // Connection pool managed by pkg client
}

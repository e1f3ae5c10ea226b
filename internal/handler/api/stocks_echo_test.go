package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"StockLens/internal/domain/models"
	"StockLens/internal/forecast"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) *StocksEchoHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewStocksEchoHandler(l, nil, nil, nil, nil, nil)
}

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/predict/AAPL", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func bindPredictRequest(t *testing.T, target string) *models.PredictRequest {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("symbol")
	c.SetParamValues("AAPL")

	out := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, out); verr != nil {
		t.Fatalf("validation failed: %v", verr)
	}
	return out
}

func TestPredictRequestKeepsExplicitZeroD(t *testing.T) {
	req := bindPredictRequest(t, "/api/predict/AAPL?p=2&d=0&horizon=3")

	if req.D == nil || *req.D != 0 {
		t.Fatalf("explicit d=0 should survive binding, got %v", req.D)
	}
	if req.P == nil || *req.P != 2 {
		t.Fatalf("p should bind to 2, got %v", req.P)
	}
	if req.Horizon == nil || *req.Horizon != 3 {
		t.Fatalf("horizon should bind to 3, got %v", req.Horizon)
	}
}

func TestPredictRequestLeavesOmittedFieldsUnset(t *testing.T) {
	req := bindPredictRequest(t, "/api/predict/AAPL")

	if req.P != nil || req.D != nil || req.Q != nil || req.Horizon != nil {
		t.Fatalf("omitted params should stay nil, got p=%v d=%v q=%v horizon=%v",
			req.P, req.D, req.Q, req.Horizon)
	}
}

func TestPredictErrorMapsInvalidOrderTo400(t *testing.T) {
	h := newTestHandler(t)
	c, rec := newTestContext()

	err := fmt.Errorf("predict: %w", &forecast.InvalidOrderError{P: 0, D: 1, Horizon: 10})
	if err := h.predictError(c, "AAPL", err); err != nil {
		t.Fatalf("predictError returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPredictErrorMapsInsufficientDataTo422(t *testing.T) {
	h := newTestHandler(t)
	c, rec := newTestContext()

	err := fmt.Errorf("predict: %w", &forecast.InsufficientDataError{Len: 4, P: 5, D: 1})
	if err := h.predictError(c, "AAPL", err); err != nil {
		t.Fatalf("predictError returned %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "needed") || !strings.Contains(body, "got") {
		t.Fatalf("body should carry needed/got params: %s", body)
	}
}

func TestPredictErrorMapsDegenerateSeriesTo422(t *testing.T) {
	h := newTestHandler(t)
	c, rec := newTestContext()

	err := fmt.Errorf("predict: %w", &forecast.DegenerateSeriesError{Len: 30})
	if err := h.predictError(c, "AAPL", err); err != nil {
		t.Fatalf("predictError returned %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestPredictErrorFallsBackTo502(t *testing.T) {
	h := newTestHandler(t)
	c, rec := newTestContext()

	if err := h.predictError(c, "AAPL", errors.New("provider down")); err != nil {
		t.Fatalf("predictError returned %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

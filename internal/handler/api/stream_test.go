package api

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
)

func newStreamContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequestedSymbolsParsesCommaList(t *testing.T) {
	h := NewStreamHandler(nil, nil, []string{"AAPL", "MSFT"}, 0, 0)

	got := h.requestedSymbols(newStreamContext("/ws/quotes?symbols=TSLA,NVDA"))
	if !reflect.DeepEqual(got, []string{"TSLA", "NVDA"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRequestedSymbolsAcceptsRepeatedParams(t *testing.T) {
	h := NewStreamHandler(nil, nil, []string{"AAPL"}, 0, 0)

	got := h.requestedSymbols(newStreamContext("/ws/quotes?symbols=TSLA&symbols=NVDA"))
	if !reflect.DeepEqual(got, []string{"TSLA", "NVDA"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRequestedSymbolsFallsBackToTracked(t *testing.T) {
	h := NewStreamHandler(nil, nil, []string{"AAPL", "MSFT"}, 0, 0)

	got := h.requestedSymbols(newStreamContext("/ws/quotes"))
	if !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Fatalf("got %v", got)
	}
}

func TestRequestedSymbolsCapped(t *testing.T) {
	h := NewStreamHandler(nil, nil, nil, 0, 2)

	got := h.requestedSymbols(newStreamContext("/ws/quotes?symbols=A,B,C,D"))
	if len(got) != 2 {
		t.Fatalf("expected cap at 2, got %v", got)
	}
}

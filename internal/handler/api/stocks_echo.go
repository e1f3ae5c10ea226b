package api

import (
	"errors"

	"StockLens/internal/domain/models"
	"StockLens/internal/forecast"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StocksEchoHandler exposes the market data and forecast endpoints.
type StocksEchoHandler struct {
	logger     *xlogger.Logger
	prediction *usecase.PredictionUseCase
	overview   *usecase.OverviewUseCase
	history    *usecase.HistoryUseCase
	news       *usecase.NewsUseCase
	stream     *StreamHandler
}

func NewStocksEchoHandler(
	logger *xlogger.Logger,
	prediction *usecase.PredictionUseCase,
	overview *usecase.OverviewUseCase,
	history *usecase.HistoryUseCase,
	news *usecase.NewsUseCase,
	stream *StreamHandler,
) *StocksEchoHandler {
	return &StocksEchoHandler{
		logger:     logger,
		prediction: prediction,
		overview:   overview,
		history:    history,
		news:       news,
		stream:     stream,
	}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock/:symbol", h.Stock)
	g.GET("/predict/:symbol", h.Predict)
	g.GET("/overview", h.Overview)
	g.GET("/news", h.News)
	g.GET("/news/:symbol", h.News)

	e.GET("/health", h.Health)
	if h.stream != nil {
		e.GET("/ws/quotes", h.stream.Quotes)
	}
}

func (h *StocksEchoHandler) Stock(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.history.Get(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("history usecase error",
			xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("could not load history").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.prediction.Predict(c.Request().Context(), *req)
	if err != nil {
		return h.predictError(c, req.Symbol, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// predictError maps the forecast error taxonomy onto HTTP statuses:
// bad model orders are the caller's fault, short or flat series mean
// the request was fine but cannot be served.
func (h *StocksEchoHandler) predictError(c echo.Context, symbol string, err error) error {
	var invalidOrder *forecast.InvalidOrderError
	if errors.As(err, &invalidOrder) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(invalidOrder.Error()))
	}

	var insufficient *forecast.InsufficientDataError
	if errors.As(err, &insufficient) {
		return xhttp.AppErrorResponse(c,
			xhttp.UnprocessableError(insufficient.Error()).
				WithParam("needed", insufficient.P+insufficient.D+1).
				WithParam("got", insufficient.Len))
	}

	var degenerate *forecast.DegenerateSeriesError
	if errors.As(err, &degenerate) {
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError(degenerate.Error()))
	}

	h.logger.Error("predict usecase error",
		xlogger.String("symbol", symbol), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.UpstreamError("could not produce forecast").WithError(err))
}

func (h *StocksEchoHandler) Overview(c echo.Context) error {
	res, err := h.overview.Get(c.Request().Context())
	if err != nil {
		h.logger.Error("overview usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=30")
	return xhttp.SuccessResponse(c, res)
}

func (h *StocksEchoHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	articles, err := h.news.Get(c.Request().Context(), req.Symbol, req.Limit)
	if err != nil {
		h.logger.Error("news usecase error",
			xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("could not load news").WithError(err))
	}
	return xhttp.ListResponse(c, articles, int64(len(articles)))
}

func (h *StocksEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

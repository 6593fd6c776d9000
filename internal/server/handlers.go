package server

import (
	"errors"
	"net/http"
	"strings"

	"ChartFeed/internal/catalog"
	"ChartFeed/internal/collector"
	"ChartFeed/internal/datafeed"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the chart host's pull requests.
type Handler struct {
	feed   Feed
	logger *zap.Logger
}

type historyQuery struct {
	Symbol     string `form:"symbol" binding:"required"`
	Resolution string `form:"resolution" binding:"required"`
	From       *int64 `form:"from" binding:"required"`
	To         *int64 `form:"to" binding:"required"`
}

// Config returns the feed capabilities.
// GET /config
func (h *Handler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.OnReady())
}

// Search returns catalog entries matching the query.
// GET /search?query=
func (h *Handler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.SearchSymbols(c.Query("query")))
}

// Symbol resolves one symbol.
// GET /symbols?symbol=
func (h *Handler) Symbol(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		sendError(c, http.StatusBadRequest, "symbol is required")
		return
	}
	info, err := h.feed.ResolveSymbol(symbol)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// History returns bars for a symbol within [from, to] (unix seconds).
// GET /history?symbol=&resolution=&from=&to=
func (h *Handler) History(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		sendError(c, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}
	if !datafeed.SupportsResolution(q.Resolution) {
		sendError(c, http.StatusBadRequest, "unsupported resolution "+q.Resolution)
		return
	}

	res, err := h.feed.GetBars(c.Request.Context(), q.Symbol, *q.From, *q.To)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var te *collector.TransportError
	var me *collector.MalformedPayloadError
	switch {
	case errors.Is(err, catalog.ErrSymbolNotFound):
		sendError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &te), errors.As(err, &me):
		sendError(c, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		sendError(c, http.StatusInternalServerError, "internal error")
	}
}

func sendError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

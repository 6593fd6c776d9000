// Package server exposes the datafeed to chart hosts over HTTP.
package server

import (
	"context"
	"net/http"

	"ChartFeed/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Feed is the query surface the handlers need.
type Feed interface {
	OnReady() model.Capabilities
	SearchSymbols(query string) []model.CurrencyDescriptor
	ResolveSymbol(symbol string) (model.SymbolInfo, error)
	GetBars(ctx context.Context, symbol string, fromSec, toSec int64) (model.BarsResult, error)
}

// NewRouter wires the routes and middleware.
func NewRouter(feed Feed, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	h := &Handler{feed: feed, logger: logger}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/config", h.Config)
	router.GET("/search", h.Search)
	router.GET("/symbols", h.Symbol)
	router.GET("/history", h.History)
	return router
}

package collector

import (
	"context"

	"ChartFeed/internal/model"
)

// Fetcher retrieves the full daily close history for a symbol.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string) ([]model.RawPriceRecord, error)
	Name() string
}

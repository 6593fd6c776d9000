// Package datafeed answers the chart host's pull requests: capabilities,
// symbol search and resolution, and historical bars.
package datafeed

import (
	"context"
	"fmt"
	"math"
	"time"

	"ChartFeed/internal/bars"
	"ChartFeed/internal/cache"
	"ChartFeed/internal/catalog"
	"ChartFeed/internal/collector"
	"ChartFeed/internal/model"

	"go.uber.org/zap"
)

// SupportedResolutions are the resolutions advertised to the host. All of
// them are served from the same daily series.
var SupportedResolutions = []string{"D", "W", "M", "3M", "Y"}

// Datafeed coordinates the catalog, the cache, the remote fetch and bar
// synthesis. It holds no per-call state.
type Datafeed struct {
	Catalog *catalog.Catalog
	Cache   *cache.Store
	Fetcher collector.Fetcher
	Policy  bars.Policy
	logger  *zap.Logger
}

// New creates a Datafeed. policy must be PolicyPriorClose or PolicyFlat.
func New(cat *catalog.Catalog, store *cache.Store, fetcher collector.Fetcher, policy bars.Policy, logger *zap.Logger) (*Datafeed, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("datafeed: %w %q", bars.ErrUnknownPolicy, policy)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Datafeed{
		Catalog: cat,
		Cache:   store,
		Fetcher: fetcher,
		Policy:  policy,
		logger:  logger,
	}, nil
}

// OnReady reports what the feed supports.
func (d *Datafeed) OnReady() model.Capabilities {
	return model.Capabilities{
		SupportedResolutions: append([]string(nil), SupportedResolutions...),
		SupportsSearch:       true,
	}
}

// SupportsResolution reports whether res is one of SupportedResolutions.
func SupportsResolution(res string) bool {
	for _, r := range SupportedResolutions {
		if r == res {
			return true
		}
	}
	return false
}

// SearchSymbols never fails; an empty result is valid.
func (d *Datafeed) SearchSymbols(query string) []model.CurrencyDescriptor {
	return d.Catalog.Search(query)
}

// ResolveSymbol returns chart metadata for symbol, or an error wrapping
// catalog.ErrSymbolNotFound.
func (d *Datafeed) ResolveSymbol(symbol string) (model.SymbolInfo, error) {
	desc, err := d.Catalog.Resolve(symbol)
	if err != nil {
		return model.SymbolInfo{}, err
	}
	info := model.SymbolInfo{
		CurrencyDescriptor:   desc,
		Ticker:               desc.Symbol,
		Type:                 "fiat",
		Exchange:             "OpenExchangeRates",
		Session:              "24x7",
		Timezone:             "Etc/UTC",
		MinMov:               1,
		PriceScale:           1000000,
		HasIntraday:          false,
		SupportedResolutions: append([]string(nil), SupportedResolutions...),
		VolumePrecision:      8,
		DataStatus:           "endofday",
	}
	if desc.Symbol == "GAUUSD" {
		info.Type = "index"
		info.Exchange = "Index"
	}
	return info, nil
}

// GetBars returns the bars of symbol within [fromSec, toSec] (seconds,
// inclusive). NoData is set when the symbol has no bars at all.
//
// Fetch failures are returned unchanged and nothing is cached for them.
func (d *Datafeed) GetBars(ctx context.Context, symbol string, fromSec, toSec int64) (model.BarsResult, error) {
	canonical, err := d.Catalog.Canonical(symbol)
	if err != nil {
		return model.BarsResult{}, err
	}

	records, hit := d.Cache.Get(canonical)
	if hit {
		d.logger.Debug("cache hit", zap.String("symbol", canonical), zap.Int("records", len(records)))
	} else {
		records, err = d.fetchAndStore(ctx, canonical)
		if err != nil {
			return model.BarsResult{}, err
		}
	}

	bars.SortRecords(records)
	all := bars.Synthesize(records, d.Policy)
	filtered := bars.FilterRange(all, secToMs(fromSec), secToMs(toSec))

	d.logger.Debug("bars served",
		zap.String("symbol", canonical),
		zap.Bool("cacheHit", hit),
		zap.Int64("from", fromSec),
		zap.Int64("to", toSec),
		zap.Int("total", len(all)),
		zap.Int("given", len(filtered)))

	return model.BarsResult{Bars: filtered, NoData: len(all) == 0}, nil
}

// Refresh fetches symbol unconditionally and replaces its cache entry.
// Unlike GetBars, a failed cache write is reported.
func (d *Datafeed) Refresh(ctx context.Context, symbol string) (int, error) {
	canonical, err := d.Catalog.Canonical(symbol)
	if err != nil {
		return 0, err
	}
	records, err := d.Fetcher.FetchDaily(ctx, canonical)
	if err != nil {
		return 0, err
	}
	if err := d.Cache.Set(canonical, records); err != nil {
		return 0, fmt.Errorf("cache %s: %w", canonical, err)
	}
	return len(records), nil
}

// secToMs converts seconds to milliseconds, saturating at the int64 bounds.
func secToMs(sec int64) int64 {
	switch {
	case sec > math.MaxInt64/1000:
		return math.MaxInt64
	case sec < math.MinInt64/1000:
		return math.MinInt64
	default:
		return sec * 1000
	}
}

func (d *Datafeed) fetchAndStore(ctx context.Context, symbol string) ([]model.RawPriceRecord, error) {
	start := time.Now()
	records, err := d.Fetcher.FetchDaily(ctx, symbol)
	if err != nil {
		d.logger.Error("fetch failed",
			zap.String("symbol", symbol),
			zap.String("fetcher", d.Fetcher.Name()),
			zap.Error(err))
		return nil, err
	}
	d.logger.Info("fetched from upstream",
		zap.String("symbol", symbol),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))

	if err := d.Cache.Set(symbol, records); err != nil {
		d.logger.Warn("cache write failed", zap.String("symbol", symbol), zap.Error(err))
	}
	return records, nil
}

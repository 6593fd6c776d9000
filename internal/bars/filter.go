package bars

import (
	"sort"

	"ChartFeed/internal/model"

	"github.com/shopspring/decimal"
)

// FilterRange returns the bars with fromMs <= Time <= toMs, ascending by time.
// Bars sharing a timestamp are all kept in their input order.
func FilterRange(in []model.Bar, fromMs, toMs int64) []model.Bar {
	out := make([]model.Bar, 0, len(in))
	for _, b := range in {
		if b.Time >= fromMs && b.Time <= toMs {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// SortRecords orders records by date ascending in place. Upstream and cached
// data are expected to be sorted already, so this is usually a no-op scan.
func SortRecords(records []model.RawPriceRecord) {
	if sort.SliceIsSorted(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) }) {
		return
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

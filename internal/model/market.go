package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used by the upstream source and the cache.
const DateLayout = "2006-01-02"

// RawPriceRecord is one trading day's closing price for a symbol.
type RawPriceRecord struct {
	Date  time.Time // UTC midnight
	Close decimal.Decimal
}

// wireRecord is the upstream JSON shape: {"datetime": "YYYY-MM-DD", "close": 1.7989}.
type wireRecord struct {
	Datetime string       `json:"datetime"`
	Close    *json.Number `json:"close"`
}

// ParseDate parses a YYYY-MM-DD calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MarshalJSON writes the upstream wire shape with close as a JSON number.
func (r RawPriceRecord) MarshalJSON() ([]byte, error) {
	c := json.Number(r.Close.String())
	return json.Marshal(wireRecord{
		Datetime: r.Date.UTC().Format(DateLayout),
		Close:    &c,
	})
}

// UnmarshalJSON rejects records with a missing or invalid datetime or close.
func (r *RawPriceRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Datetime == "" {
		return errors.New("record: missing datetime")
	}
	date, err := ParseDate(w.Datetime)
	if err != nil {
		return fmt.Errorf("record: datetime %q: %w", w.Datetime, err)
	}
	if w.Close == nil {
		return fmt.Errorf("record %s: missing close", w.Datetime)
	}
	c, err := decimal.NewFromString(w.Close.String())
	if err != nil {
		return fmt.Errorf("record %s: close: %w", w.Datetime, err)
	}
	r.Date = date
	r.Close = c
	return nil
}

// Bar is one chart data point. Time is epoch milliseconds.
type Bar struct {
	Time  int64           `json:"time"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

// MarshalJSON emits prices as JSON numbers rather than decimal's default quoted strings.
func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Time  int64       `json:"time"`
		Open  json.Number `json:"open"`
		High  json.Number `json:"high"`
		Low   json.Number `json:"low"`
		Close json.Number `json:"close"`
	}{
		Time:  b.Time,
		Open:  json.Number(b.Open.String()),
		High:  json.Number(b.High.String()),
		Low:   json.Number(b.Low.String()),
		Close: json.Number(b.Close.String()),
	})
}

// BarsResult is the answer to a bars request. NoData is set only when the
// symbol has no synthesized bars at all, not when the window is merely empty.
type BarsResult struct {
	Bars   []Bar `json:"bars"`
	NoData bool  `json:"noData"`
}

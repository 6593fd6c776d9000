// Package bars turns daily closing prices into chart bars.
//
// The upstream source only records a close per day, so open, high and low are
// derived. Two derivation rules are in use and neither is authoritative; the
// caller picks one through Policy.
package bars

import (
	"errors"
	"fmt"
	"strings"

	"ChartFeed/internal/model"
)

// Policy selects how open/high/low are derived from consecutive closes.
type Policy string

const (
	// PolicyPriorClose opens each bar at the previous close and spans
	// high/low across open and close. The first and the last record of the
	// series produce no bar.
	PolicyPriorClose Policy = "prior_close"

	// PolicyFlat opens each bar at the previous close and pins
	// high = low = close. Only the first record produces no bar.
	PolicyFlat Policy = "flat"
)

// ErrUnknownPolicy is returned for a policy other than PolicyPriorClose or PolicyFlat.
var ErrUnknownPolicy = errors.New("unknown synthesis policy")

// Valid reports whether p is one of the defined policies. The zero value is not.
func (p Policy) Valid() bool {
	return p == PolicyPriorClose || p == PolicyFlat
}

// ParsePolicy maps a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w %q (want %q or %q)", ErrUnknownPolicy, s, PolicyPriorClose, PolicyFlat)
	}
	return p, nil
}

// Synthesize converts records, assumed ascending by date, into bars.
// A series shorter than two records, or an unknown policy, yields an empty,
// non-nil slice.
func Synthesize(records []model.RawPriceRecord, policy Policy) []model.Bar {
	n := len(records)
	var end int
	switch policy {
	case PolicyPriorClose:
		end = n - 1
	case PolicyFlat:
		end = n
	default:
		return []model.Bar{}
	}
	if n < 2 || end <= 1 {
		return []model.Bar{}
	}

	out := make([]model.Bar, 0, end-1)
	for i := 1; i < end; i++ {
		prev, cur := records[i-1].Close, records[i].Close
		bar := model.Bar{
			Time:  records[i].Date.UTC().UnixMilli(),
			Open:  prev,
			Close: cur,
		}
		switch policy {
		case PolicyFlat:
			bar.High, bar.Low = cur, cur
		case PolicyPriorClose:
			bar.High = maxDecimal(prev, cur)
			bar.Low = minDecimal(prev, cur)
		}
		out = append(out, bar)
	}
	return out
}

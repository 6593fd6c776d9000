package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPriceRecord_Unmarshal(t *testing.T) {
	var recs []RawPriceRecord
	require.NoError(t, json.Unmarshal([]byte(`[{"datetime":"2002-01-02","close":1.7989}]`), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, time.Date(2002, 1, 2, 0, 0, 0, 0, time.UTC), recs[0].Date)
	assert.True(t, recs[0].Close.Equal(decimal.RequireFromString("1.7989")))
}

func TestRawPriceRecord_UnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing datetime", `{"close":1.5}`},
		{"bad datetime", `{"datetime":"02/01/2002","close":1.5}`},
		{"missing close", `{"datetime":"2002-01-02"}`},
		{"null close", `{"datetime":"2002-01-02","close":null}`},
		{"non-numeric close", `{"datetime":"2002-01-02","close":"abc"}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RawPriceRecord
			assert.Error(t, json.Unmarshal([]byte(tt.in), &r))
		})
	}
}

func TestRawPriceRecord_MarshalKeepsPrecision(t *testing.T) {
	r := RawPriceRecord{
		Date:  time.Date(2002, 1, 2, 0, 0, 0, 0, time.UTC),
		Close: decimal.RequireFromString("1234.567891"),
	}
	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"datetime":"2002-01-02","close":1234.567891}`, string(out))
	assert.Contains(t, string(out), "1234.567891")
}

func TestBar_MarshalJSON(t *testing.T) {
	b := Bar{
		Time:  1010016000000,
		Open:  decimal.RequireFromString("1.7989"),
		High:  decimal.RequireFromString("1.8012"),
		Low:   decimal.RequireFromString("1.7989"),
		Close: decimal.RequireFromString("1.8012"),
	}
	out, err := json.Marshal(BarsResult{Bars: []Bar{b}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"bars":[{"time":1010016000000,"open":1.7989,"high":1.8012,"low":1.7989,"close":1.8012}],"noData":false}`, string(out))
}

func TestWarmReport_OK(t *testing.T) {
	r := &WarmReport{Refreshed: map[string]int{"GAUEUR": 3}, Failed: map[string]string{}}
	assert.True(t, r.OK())

	r.PurgeErr = "disk full"
	assert.False(t, r.OK())

	r.PurgeErr = ""
	r.Failed["GAUJPY"] = "status 500"
	assert.False(t, r.OK())
}

package model

// CurrencyDescriptor describes one catalog symbol.
type CurrencyDescriptor struct {
	Symbol      string `json:"symbol" yaml:"symbol"`
	DisplayName string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"-"`
}

// SymbolInfo is the resolved form of a descriptor handed to the chart host.
type SymbolInfo struct {
	CurrencyDescriptor
	Ticker               string   `json:"ticker"`
	Type                 string   `json:"type"`
	Exchange             string   `json:"exchange"`
	Session              string   `json:"session"`
	Timezone             string   `json:"timezone"`
	MinMov               int      `json:"minmov"`
	PriceScale           int      `json:"pricescale"`
	HasIntraday          bool     `json:"has_intraday"`
	SupportedResolutions []string `json:"supported_resolutions"`
	VolumePrecision      int      `json:"volume_precision"`
	DataStatus           string   `json:"data_status"`
}

// Capabilities is returned to the host when it first connects.
type Capabilities struct {
	SupportedResolutions   []string `json:"supported_resolutions"`
	SupportsSearch         bool     `json:"supports_search"`
	SupportsGroupRequest   bool     `json:"supports_group_request"`
	SupportsMarks          bool     `json:"supports_marks"`
	SupportsTimescaleMarks bool     `json:"supports_timescale_marks"`
	SupportsTime           bool     `json:"supports_time"`
}

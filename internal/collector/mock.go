package collector

import (
	"context"
	"fmt"
	"sync"

	"ChartFeed/internal/model"
)

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Records map[string][]model.RawPriceRecord
	Err     error // returned for every call when set

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, symbol string) ([]model.RawPriceRecord, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	recs, ok := m.Records[symbol]
	if !ok {
		return nil, &TransportError{URL: "mock://" + symbol, StatusCode: 404, Body: fmt.Sprintf("no data for %s", symbol)}
	}
	out := make([]model.RawPriceRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// Calls reports how many fetches were made for symbol.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// TotalCalls reports fetches across all symbols.
func (m *MockFetcher) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

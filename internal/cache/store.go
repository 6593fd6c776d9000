// Package cache keeps raw daily records per symbol with an absolute expiry.
//
// All entries live in one JSON document under a single namespaced key of a
// Backend. The key carries SchemaVersion, so a schema change orphans old
// documents instead of migrating them.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"ChartFeed/internal/model"

	"go.uber.org/zap"
)

const (
	SchemaVersion    = 2
	DefaultNamespace = "chartfeed_cache"
	DefaultTTL       = 12 * time.Hour
)

// ErrCorrupt is returned when the stored document cannot be decoded.
var ErrCorrupt = errors.New("cache document corrupt")

// Backend persists opaque values by key. Load returns (nil, nil) for a missing key.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}

// Entry is the stored form of one symbol's records.
type Entry struct {
	ExpireEpoch int64                  `json:"expireEpoch"` // epoch ms
	Data        []model.RawPriceRecord `json:"data"`
}

// Store is safe for concurrent use. Each Get or Set is atomic; no lock is
// held between calls.
//
// The decoded document is kept in memory after the first successful read and
// is the source of truth for this process. The backend is read again only
// after a failed write.
type Store struct {
	backend Backend
	key     string
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger

	mu  sync.Mutex
	doc map[string]Entry // nil until loaded
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithNamespace overrides DefaultNamespace. The schema version is appended.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.key = namespacedKey(ns) }
}

// WithLogger sets the logger for read and write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store on top of backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     namespacedKey(DefaultNamespace),
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func namespacedKey(ns string) string {
	return fmt.Sprintf("%s_v%d", ns, SchemaVersion)
}

// Key is the backend key holding the document.
func (s *Store) Key() string { return s.key }

// TTL is the lifetime given to new entries.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns symbol's records if an unexpired entry exists. An unreadable
// document counts as a miss.
func (s *Store) Get(symbol string) ([]model.RawPriceRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		s.logger.Warn("cache read failed, treating as miss", zap.String("symbol", symbol), zap.Error(err))
		return nil, false
	}
	entry, ok := doc[symbol]
	if !ok {
		return nil, false
	}
	if entry.ExpireEpoch < s.now().UnixMilli() {
		return nil, false
	}
	out := make([]model.RawPriceRecord, len(entry.Data))
	copy(out, entry.Data)
	return out, true
}

// Set stores records for symbol, expiring TTL from now. Any previous entry
// for symbol is replaced. A corrupt document is discarded and rewritten.
func (s *Store) Set(symbol string, records []model.RawPriceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		s.logger.Warn("discarding corrupt cache document", zap.String("key", s.key), zap.Error(err))
		doc = map[string]Entry{}
		s.doc = doc
	}
	data := make([]model.RawPriceRecord, len(records))
	copy(data, records)
	doc[symbol] = Entry{
		ExpireEpoch: s.now().Add(s.ttl).UnixMilli(),
		Data:        data,
	}
	if err := s.save(doc); err != nil {
		return err
	}
	s.logger.Debug("cache saved", zap.String("symbol", symbol), zap.Int("records", len(records)))
	return nil
}

// Purge physically removes expired entries and reports how many were dropped.
func (s *Store) Purge() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	now := s.now().UnixMilli()
	removed := 0
	for sym, e := range doc {
		if e.ExpireEpoch < now {
			delete(doc, sym)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(doc)
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// load returns the in-memory document, reading the backend on first use.
// A failed read is not remembered, so the next call retries it.
func (s *Store) load() (map[string]Entry, error) {
	if s.doc != nil {
		return s.doc, nil
	}
	raw, err := s.backend.Load(s.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	doc := map[string]Entry{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	s.doc = doc
	return doc, nil
}

// save persists doc. On failure the in-memory copy is dropped so the next
// call reloads whatever the backend still holds.
func (s *Store) save(doc map[string]Entry) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		s.doc = nil
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := s.backend.Save(s.key, raw); err != nil {
		s.doc = nil
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Package symbolstore implements the concurrent map from symbol identifier
// to (sample log, segment tree) pair. Distinct symbols are fully
// independent and proceed in parallel; a single mutex per symbol guards its
// sample log and segment tree as one unit, since the two must never be
// observed out of sync with each other.
package symbolstore

import (
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"github.com/melatron/hft-service/pkg/aggregate"
	"github.com/melatron/hft-service/pkg/apperror"
	"github.com/melatron/hft-service/pkg/samplelog"
	"github.com/melatron/hft-service/pkg/segtree"
)

var log = logging.Logger("symbolstore")

const (
	// DefaultMaxSymbols is the default cap on the number of distinct
	// symbols a Store will track.
	DefaultMaxSymbols = 10
	// DefaultInitialTreeCapacity is the number of leaves a symbol's
	// segment tree starts with before it needs its first doubling.
	DefaultInitialTreeCapacity = 1 << 10
	// DefaultMaxSampleCapacity is the point past which further samples
	// for a symbol are accepted but silently dropped, per §4.3's
	// partial-batch-acceptance policy.
	DefaultMaxSampleCapacity = 100_000_000
)

// Stats is the windowed aggregate returned by GetStats.
type Stats struct {
	Min, Max, Last, Avg, Var float64
}

// Store is the concurrent map from symbol identifier to its data. The zero
// value is not usable; construct with New.
type Store struct {
	mu      sync.RWMutex
	symbols map[string]*symbolEntry

	maxSymbols          int
	initialTreeCapacity int
	maxSampleCapacity   int
}

type symbolEntry struct {
	mu   sync.RWMutex
	log  *samplelog.Log
	tree *segtree.Tree
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithMaxSymbols overrides the default cap on distinct tracked symbols.
func WithMaxSymbols(n int) Option {
	return func(s *Store) { s.maxSymbols = n }
}

// WithInitialTreeCapacity overrides the starting segment tree capacity
// allocated for a symbol's first ingest.
func WithInitialTreeCapacity(n int) Option {
	return func(s *Store) { s.initialTreeCapacity = n }
}

// WithMaxSampleCapacity overrides the sample count past which a symbol's
// further appends are silently dropped.
func WithMaxSampleCapacity(n int) Option {
	return func(s *Store) { s.maxSampleCapacity = n }
}

// New builds an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		symbols:             make(map[string]*symbolEntry),
		maxSymbols:          DefaultMaxSymbols,
		initialTreeCapacity: DefaultInitialTreeCapacity,
		maxSampleCapacity:   DefaultMaxSampleCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SymbolCount returns the number of distinct symbols currently tracked.
func (s *Store) SymbolCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

func (s *Store) lookup(symbol string) *symbolEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols[symbol]
}

// getOrCreate returns the entry for symbol, creating it if this is the
// symbol's first ingest. It enforces the maximum-symbol-count policy on
// creation only: existing symbols are never rejected for being over cap.
func (s *Store) getOrCreate(symbol string) (*symbolEntry, error) {
	if e := s.lookup(symbol); e != nil {
		return e, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another writer may have created it between the RUnlock above and
	// this Lock.
	if e, ok := s.symbols[symbol]; ok {
		return e, nil
	}

	if len(s.symbols) >= s.maxSymbols {
		return nil, apperror.BadRequest("symbol cap reached (max %d distinct symbols)", s.maxSymbols)
	}

	e := &symbolEntry{
		log:  samplelog.New(),
		tree: segtree.New(s.initialTreeCapacity),
	}
	s.symbols[symbol] = e
	return e, nil
}

// AddBatch appends values, in order, to symbol's sample log and indexes
// each one into its segment tree. The whole batch is applied under a
// single exclusive lock on the symbol: a concurrent reader observes either
// the state before this call or the state after, never a partial one.
func (s *Store) AddBatch(symbol string, values []float64) error {
	if len(values) == 0 {
		return apperror.BadRequest("empty batch")
	}
	for _, v := range values {
		// -0.0 < 0 is false under IEEE 754 comparison, so signed zero is
		// accepted, as required.
		if v < 0 {
			return apperror.BadRequest("negative prices not allowed")
		}
	}

	entry, err := s.getOrCreate(symbol)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	for _, v := range values {
		if entry.log.Len() >= s.maxSampleCapacity {
			log.Warnf("symbol %q at capacity (%d samples); dropping remainder of batch", symbol, s.maxSampleCapacity)
			break
		}

		idx := entry.log.Append(v)
		if idx >= entry.tree.Capacity() {
			entry.tree = segtree.Rebuild(nextTreeCapacity(entry.tree.Capacity(), idx+1), entry.log.Values())
			continue
		}
		entry.tree.Update(idx, v)
	}

	return nil
}

// GetStats computes the windowed aggregate over the most recent windowSize
// samples of symbol (or all available samples, if fewer exist).
func (s *Store) GetStats(symbol string, windowSize int) (Stats, error) {
	entry := s.lookup(symbol)
	if entry == nil {
		return Stats{}, apperror.SymbolNotFound(symbol)
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()

	n := entry.log.Len()
	if n == 0 {
		return Stats{}, apperror.NotEnoughData()
	}

	w := windowSize
	if w > n {
		w = n
	}
	start := n - w
	end := n - 1

	node := entry.tree.Query(start, end)
	if node.Count == 0 {
		return Stats{}, apperror.NotEnoughData()
	}

	avg, variance := aggregate.Stats(node)
	last, _ := entry.log.Last()

	return Stats{
		Min:  node.Min,
		Max:  node.Max,
		Last: last,
		Avg:  avg,
		Var:  variance,
	}, nil
}

// nextTreeCapacity doubles cur until it covers required, matching the
// segment tree's growth policy (§4.2). AddBatch calls it as soon as the next
// index reaches the current capacity, so each resize doubles the tree once
// and re-replays the full log; a batch that crosses several doublings
// rebuilds once per doubling.
func nextTreeCapacity(cur, required int) int {
	next := cur
	if next == 0 {
		next = 1
	}
	for next < required {
		next *= 2
	}
	return next
}

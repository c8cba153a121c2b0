package symbolstore

import (
	"math"
	"sync"
	"testing"

	"github.com/melatron/hft-service/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBatchRejectsEmptyBatch(t *testing.T) {
	s := New()
	err := s.AddBatch("A", nil)
	require.Error(t, err)
	assertKind(t, err, apperror.KindBadRequest)
}

func TestAddBatchRejectsNegativeValue(t *testing.T) {
	s := New()
	err := s.AddBatch("BTC-USD", []float64{68000, -50})
	require.Error(t, err)
	assertKind(t, err, apperror.KindBadRequest)
}

func TestAddBatchAcceptsNegativeZero(t *testing.T) {
	s := New()
	err := s.AddBatch("A", []float64{math.Copysign(0, -1), 1, 2})
	require.NoError(t, err)
}

func TestAddBatchEnforcesSymbolCap(t *testing.T) {
	s := New(WithMaxSymbols(2))
	require.NoError(t, s.AddBatch("A", []float64{1}))
	require.NoError(t, s.AddBatch("B", []float64{1}))

	err := s.AddBatch("C", []float64{1})
	require.Error(t, err)
	assertKind(t, err, apperror.KindBadRequest)

	// An existing symbol is unaffected by the cap.
	require.NoError(t, s.AddBatch("A", []float64{2}))
}

func TestGetStatsUnknownSymbol(t *testing.T) {
	s := New()
	_, err := s.GetStats("NOPE", 10)
	require.Error(t, err)
	assertKind(t, err, apperror.KindSymbolNotFound)
}

func TestGetStatsEmptySymbolNeverIngested(t *testing.T) {
	s := New()
	_, err := s.GetStats("", 10)
	require.Error(t, err)
	assertKind(t, err, apperror.KindSymbolNotFound)
}

func TestGetStatsBasicScenario(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch("A", []float64{10, 20, 5, 15}))

	stats, err := s.GetStats("A", 10)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
	assert.Equal(t, 15.0, stats.Last)
	assert.InDelta(t, 12.5, stats.Avg, 1e-9)
	assert.InDelta(t, 31.25, stats.Var, 1e-9)
}

func TestGetStatsWindowLargerThanAvailableData(t *testing.T) {
	s := New()
	require.NoError(t, s.AddBatch("A", []float64{10, 20, 5, 15, 25}))

	stats, err := s.GetStats("A", 100)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats.Min)
	assert.Equal(t, 25.0, stats.Max)
	assert.Equal(t, 25.0, stats.Last)
	assert.InDelta(t, 15.0, stats.Avg, 1e-9)
	assert.InDelta(t, 50.0, stats.Var, 1e-9)
}

func TestGetStatsWindowRespectsOnlyRecentSamples(t *testing.T) {
	s := New()
	values := make([]float64, 0, 20)
	for i := 1; i <= 20; i++ {
		values = append(values, float64(i))
	}
	require.NoError(t, s.AddBatch("A", values))

	stats, err := s.GetStats("A", 5)
	require.NoError(t, err)
	// last 5 samples: 16..20
	assert.Equal(t, 16.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
	assert.Equal(t, 20.0, stats.Last)
	assert.InDelta(t, 18.0, stats.Avg, 1e-9)
}

func TestBatchVsIndividualIngestAgree(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	batched := New()
	require.NoError(t, batched.AddBatch("A", values))

	individual := New()
	for _, v := range values {
		require.NoError(t, individual.AddBatch("A", []float64{v}))
	}

	wantStats, err := batched.GetStats("A", 100)
	require.NoError(t, err)
	gotStats, err := individual.GetStats("A", 100)
	require.NoError(t, err)

	assert.InDelta(t, wantStats.Avg, gotStats.Avg, 1e-10)
	assert.InDelta(t, wantStats.Var, gotStats.Var, 1e-10)
	assert.Equal(t, wantStats.Min, gotStats.Min)
	assert.Equal(t, wantStats.Max, gotStats.Max)
	assert.Equal(t, wantStats.Last, gotStats.Last)
}

func TestGrowthAcrossInitialCapacity(t *testing.T) {
	s := New(WithInitialTreeCapacity(2))
	values := []float64{10, 20, 5, 15, 25, 30, 1}
	require.NoError(t, s.AddBatch("A", values))

	stats, err := s.GetStats("A", 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 30.0, stats.Max)
	assert.Equal(t, 1.0, stats.Last)
}

func TestCapacityOverflowDropsRemainder(t *testing.T) {
	s := New(WithMaxSampleCapacity(3))
	require.NoError(t, s.AddBatch("A", []float64{1, 2, 3, 4, 5}))

	stats, err := s.GetStats("A", 100)
	require.NoError(t, err)
	assert.Equal(t, 3.0, stats.Max)
}

func TestConcurrentWritersAndReadersOnOneSymbol(t *testing.T) {
	s := New()
	const writers = 12
	const perBatch = 100

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func(base int) {
			defer wg.Done()
			values := make([]float64, perBatch)
			for i := range values {
				values[i] = float64(base*perBatch + i)
			}
			assert.NoError(t, s.AddBatch("SYM", values))
		}(w)
	}

	stop := make(chan struct{})
	var readerWG sync.WaitGroup
	readerWG.Add(4)
	for r := 0; r < 4; r++ {
		go func() {
			defer readerWG.Done()
			for {
				select {
				case <-stop:
					return
				default:
					stats, err := s.GetStats("SYM", 1000)
					if err == nil {
						assert.GreaterOrEqual(t, stats.Max, stats.Min)
					}
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readerWG.Wait()

	// Batches land in scheduler order, so only a window covering every
	// posted sample has a known min and max.
	stats, err := s.GetStats("SYM", writers*perBatch)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.Min)
	assert.Equal(t, float64(writers*perBatch-1), stats.Max)
}

func TestConcurrentDistinctSymbolsAreIndependent(t *testing.T) {
	s := New(WithMaxSymbols(100))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sym := string(rune('A' + n))
			assert.NoError(t, s.AddBatch(sym, []float64{float64(n), float64(n) + 1}))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, s.SymbolCount())
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	ae, ok := err.(*apperror.Error)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	assert.Equal(t, kind, ae.Kind)
}

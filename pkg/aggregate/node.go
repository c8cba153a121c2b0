// Package aggregate defines the fixed-schema summary value merged across a
// symbol's segment tree and the associative merge that combines two such
// summaries covering adjacent, disjoint ranges.
package aggregate

import "math"

// Node summarizes a contiguous range of a symbol's sample log.
//
// The running moments use Welford's online algorithm (mean and M2, the sum
// of squared deviations from the mean) rather than a sum/sum-of-squares
// pair. Sum-of-squares cancels catastrophically once samples share a large
// common offset (~1e9), which silently corrupts variance; Welford's
// parallel-merge form stays accurate across that range.
type Node struct {
	Min   float64
	Max   float64
	Count uint64
	Mean  float64
	M2    float64
}

// Identity is the neutral element of Merge: merging it with any node n
// yields n unchanged.
func Identity() Node {
	return Node{
		Min: math.Inf(1),
		Max: math.Inf(-1),
	}
}

// Leaf builds the singleton node for a single sample value.
func Leaf(v float64) Node {
	return Node{Min: v, Max: v, Count: 1, Mean: v, M2: 0}
}

// Merge combines a and b, where a covers the range immediately to the left
// of the range covered by b. Merge is associative and commutative in the
// sense that Merge(a, b) and Merge(b, a) describe the same set of samples,
// though the Welford path only reproduces the serial left-to-right fold
// exactly when called in range order (see the segment tree's query walk).
func Merge(a, b Node) Node {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}

	count := a.Count + b.Count
	delta := b.Mean - a.Mean
	mean := a.Mean + delta*(float64(b.Count)/float64(count))
	// delta*(b.Mean-mean)*nb equals delta²·na·nb/N; taking the residual
	// against the already-rounded mean cancels that rounding when the
	// samples share a large common offset.
	m2 := a.M2 + b.M2 + delta*(b.Mean-mean)*float64(b.Count)

	min := a.Min
	if b.Min < min {
		min = b.Min
	}
	max := a.Max
	if b.Max > max {
		max = b.Max
	}

	return Node{
		Min:   min,
		Max:   max,
		Count: count,
		Mean:  mean,
		M2:    m2,
	}
}

// Stats derives the final, query-facing statistics from a merged range
// node: the average and the population variance (divisor N, clamped to 0
// to defend against a tiny negative from floating-point cancellation).
func Stats(n Node) (avg, variance float64) {
	if n.Count == 0 {
		return 0, 0
	}
	variance = n.M2 / float64(n.Count)
	if variance < 0 {
		variance = 0
	}
	return n.Mean, variance
}

// Package samplelog implements the append-only, insertion-ordered sequence
// of samples backing one symbol. It owns the authoritative length used by
// windowed queries; it has no notion of concurrency on its own and is
// always used under the caller's lock (see pkg/symbolstore).
package samplelog

// Log is an append-only, insertion-ordered list of real-valued samples.
type Log struct {
	values []float64
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Append adds v to the end of the log and returns its index.
func (l *Log) Append(v float64) int {
	l.values = append(l.values, v)
	return len(l.values) - 1
}

// Len returns the number of samples in the log.
func (l *Log) Len() int {
	return len(l.values)
}

// At returns the sample at index i. The caller must ensure 0 <= i < Len().
func (l *Log) At(i int) float64 {
	return l.values[i]
}

// Last returns the most recently appended sample and true, or 0 and false
// if the log is empty.
func (l *Log) Last() (float64, bool) {
	if len(l.values) == 0 {
		return 0, false
	}
	return l.values[len(l.values)-1], true
}

// Values returns the underlying slice. Callers must treat it as read-only:
// it is not a copy, and is only safe to read while holding the caller's
// lock on the owning symbol.
func (l *Log) Values() []float64 {
	return l.values
}

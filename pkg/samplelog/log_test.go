package samplelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendAssignsConsecutiveIndices(t *testing.T) {
	l := New()
	for i, v := range []float64{10, 20, 5, 15} {
		idx := l.Append(v)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 5.0, l.At(2))
}

func TestLastOnEmptyLog(t *testing.T) {
	l := New()
	_, ok := l.Last()
	assert.False(t, ok)
}

func TestLastReflectsMostRecentAppend(t *testing.T) {
	l := New()
	l.Append(1)
	l.Append(2)
	l.Append(3)
	v, ok := l.Last()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(values ...float64) *Matrix {
	m, err := FromData(1, values)
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewMatSample(t *testing.T) {
	s, err := NewMatSample(3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Size())
	assert.Equal(t, Shape{2, 2}, s.Shape())
	for i := 0; i < s.Size(); i++ {
		assert.Equal(t, Shape{2, 2}, s.At(i).Shape())
	}

	_, err = NewMatSample(-1, 1, 1)
	require.Error(t, err)
}

func TestSampleFrom(t *testing.T) {
	s, err := SampleFrom(column(1), []*Matrix{column(0.9), column(1.1)})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Size())
	assert.InDelta(t, 1.1, s.At(1).At(0, 0), 0)

	_, err = SampleFrom(nil, nil)
	require.Error(t, err)

	_, err = SampleFrom(column(1), []*Matrix{column(1, 2)})
	require.Error(t, err, "shape mismatch must be rejected")

	_, err = SampleFrom(column(1), []*Matrix{nil})
	require.Error(t, err)
}

func TestMatSampleStatistics(t *testing.T) {
	s, err := SampleFrom(column(1), []*Matrix{column(0.5), column(1.0), column(1.5)})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, s.Mean().At(0, 0), 1e-15)
	assert.InDelta(t, 0.25, s.Variance().At(0, 0), 1e-15)
	assert.InDelta(t, 0.5, s.StdDev().At(0, 0), 1e-15)
}

func TestMatSampleStatisticsSmall(t *testing.T) {
	s, err := SampleFrom(column(7), nil)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, s.Mean().At(0, 0), 0)
	assert.InDelta(t, 0.0, s.Variance().At(0, 0), 0)
}

func TestMatSampleEqual(t *testing.T) {
	a, _ := SampleFrom(column(1), []*Matrix{column(0.9), column(1.1)})
	b, _ := SampleFrom(column(1), []*Matrix{column(0.9), column(1.1)})
	c, _ := SampleFrom(column(1), []*Matrix{column(1.1), column(0.9)})
	d, _ := SampleFrom(column(1), []*Matrix{column(0.9)})

	assert.True(t, a.Equal(b, 0))
	assert.False(t, a.Equal(c, 1e-3), "order matters")
	assert.False(t, a.Equal(d, 1))
	assert.False(t, a.Equal(nil, 1))
}

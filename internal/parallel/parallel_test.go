package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4}

	var counter int64
	results := make([]bool, 100)
	err := ForEach(context.Background(), len(results), func(_ context.Context, i int) error {
		atomic.AddInt64(&counter, 1)
		results[i] = true
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(100), counter)
	for i, ok := range results {
		assert.True(t, ok, "missing result %d", i)
	}
}

func TestForEach_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	err := ForEach(context.Background(), 5, func(_ context.Context, i int) error {
		order = append(order, i)
		return nil
	}, cfg)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestForEach_SequentialStopsAtError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := ForEach(context.Background(), 10, func(_ context.Context, i int) error {
		calls++
		if i == 2 {
			return boom
		}
		return nil
	}, Config{})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestForEach_ParallelError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), 50, func(_ context.Context, i int) error {
		if i == 7 {
			return boom
		}
		return nil
	}, Config{Enabled: true, NumWorkers: 3})

	require.ErrorIs(t, err, boom)
}

func TestForEach_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	err := ForEach(ctx, 10, func(_ context.Context, _ int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	}, Config{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestForEach_Empty(t *testing.T) {
	err := ForEach(context.Background(), 0, func(_ context.Context, _ int) error {
		t.Fatal("must not be called")
		return nil
	}, DefaultConfig())
	require.NoError(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
	assert.Equal(t, cfg.NumWorkers > 1, cfg.Enabled)
}

package workers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ForEach_AllKeysProcessed(t *testing.T) {
	pool := NewPool(4)

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)

	keys := []string{"go", "python", "rust", "java", "kotlin"}
	err := pool.ForEach(context.Background(), keys, func(key string) error {
		mu.Lock()
		seen[key] = true
		mu.Unlock()
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, seen, len(keys))
}

func TestPool_ForEach_EmptyKeys(t *testing.T) {
	pool := NewPool(4)
	err := pool.ForEach(context.Background(), nil, func(string) error {
		t.Fatal("fn should not be called")
		return nil
	})
	assert.NoError(t, err)
}

func TestPool_ForEach_ReturnsFirstError(t *testing.T) {
	pool := NewPool(1)

	keys := []string{"a", "b", "c"}
	var calls int
	err := pool.ForEach(context.Background(), keys, func(key string) error {
		calls++
		if key == "a" {
			return fmt.Errorf("boom on %s", key)
		}
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	// With one worker, remaining keys are skipped after the failure
	assert.Equal(t, 1, calls)
}

func TestPool_ForEach_CancelledContext(t *testing.T) {
	pool := NewPool(2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.ForEach(ctx, []string{"a", "b"}, func(string) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPool_DefaultsWhenNonPositive(t *testing.T) {
	assert.Equal(t, 8, NewPool(0).Size())
	assert.Equal(t, 8, NewPool(-3).Size())
	assert.Equal(t, 2, NewPool(2).Size())
}

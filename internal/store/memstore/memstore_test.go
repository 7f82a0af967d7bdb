package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "key", "value"))

	got, ok, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestGetMissing(t *testing.T) {
	s := New()

	got, ok, err := s.Get(context.Background(), "no_such_key")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestSetOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "key", "first"))
	require.NoError(t, s.Set(ctx, "key", "second"))

	got, ok, err := s.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "key", "value")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = s.Get(ctx, "key")
		}()
	}
	wg.Wait()
}

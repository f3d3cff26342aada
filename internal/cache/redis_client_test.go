package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_SetGet(t *testing.T) {
	c := NewMemoryClient(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryClient_Miss(t *testing.T) {
	c := NewMemoryClient(100)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_Expiry(t *testing.T) {
	c := NewMemoryClient(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClient_DeleteByPrefix(t *testing.T) {
	c := NewMemoryClient(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "answer:vi:a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "answer:vi:b", []byte("2"), time.Minute))
	require.NoError(t, c.Set(ctx, "other:x", []byte("3"), time.Minute))

	require.NoError(t, c.DeleteByPrefix(ctx, "answer:"))

	_, err := c.Get(ctx, "answer:vi:a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "other:x")
	assert.NoError(t, err)
}

func TestMemoryClient_Eviction(t *testing.T) {
	c := NewMemoryClient(2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 2*time.Minute))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 3*time.Minute))

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss, "earliest-expiring entry is evicted")
}

func TestAnswerKey(t *testing.T) {
	assert.Equal(t, "answer:vi:co bao nhieu bai hat", AnswerKey("vi", "co bao nhieu bai hat"))
}

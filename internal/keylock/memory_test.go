package keylock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/apperr"
)

func TestMemory_SerializesSameKey(t *testing.T) {
	locker := NewMemory()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
		counter int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "agg-1")
			require.NoError(t, err)
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)
			counter++

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 20, counter)
	assert.Zero(t, locker.size())
}

func TestMemory_DifferentKeysDoNotBlock(t *testing.T) {
	locker := NewMemory()
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	unlockB, err := locker.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestMemory_ContextCancelled(t *testing.T) {
	locker := NewMemory()

	unlock, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, apperr.Internal)

	unlock()
	assert.Zero(t, locker.size())
}

func TestMemory_UnlockIsIdempotent(t *testing.T) {
	locker := NewMemory()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "a")
	require.NoError(t, err)
	unlock()
	unlock()

	unlock, err = locker.Lock(ctx, "a")
	require.NoError(t, err)
	unlock()
}

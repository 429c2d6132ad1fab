package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	clock := &fakeClock{now: referenceDay}
	var counts []int
	store := NewSessionStore(clock, time.Hour, func(n int) { counts = append(counts, n) })

	token, sess := store.Create()
	require.NotEmpty(t, token)
	require.NotNil(t, sess.ctrl)
	assert.Equal(t, clock, sess.ctrl.Clock, "controllers share the store clock")

	got, ok := store.Get(token)
	require.True(t, ok)
	assert.Same(t, sess, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)

	other, _ := store.Create()
	assert.NotEqual(t, token, other)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestSessionStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: referenceDay}
	store := NewSessionStore(clock, time.Hour, nil)

	token, _ := store.Create()

	// Activity refreshes the idle timer.
	clock.Advance(50 * time.Minute)
	_, ok := store.Get(token)
	require.True(t, ok)

	clock.Advance(50 * time.Minute)
	_, ok = store.Get(token)
	require.True(t, ok)

	clock.Advance(61 * time.Minute)
	_, ok = store.Get(token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired session is dropped on access")
}

func TestSessionStore_ExpiryOnGetNotifies(t *testing.T) {
	clock := &fakeClock{now: referenceDay}
	var counts []int
	store := NewSessionStore(clock, time.Hour, func(n int) { counts = append(counts, n) })

	token, _ := store.Create()
	store.Create()

	clock.Advance(30 * time.Minute)
	_, ok := store.Get(token)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, counts, "a live lookup does not notify")

	clock.Advance(2 * time.Hour)
	_, ok = store.Get(token)
	require.False(t, ok)
	assert.Equal(t, []int{1, 2, 1}, counts)
}

func TestSessionStore_PurgeOnCreate(t *testing.T) {
	clock := &fakeClock{now: referenceDay}
	var last int
	store := NewSessionStore(clock, time.Hour, func(n int) { last = n })

	store.Create()
	store.Create()
	assert.Equal(t, 2, last)

	clock.Advance(2 * time.Hour)
	store.Create()

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, last)
}

// TestSessionStore_Concurrent is meant for `go test -race`.
func TestSessionStore_Concurrent(t *testing.T) {
	clock := &fakeClock{now: referenceDay}
	store := NewSessionStore(clock, time.Hour, nil)
	token, _ := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Create()
				if sess, ok := store.Get(token); ok {
					sess.mu.Lock()
					_ = sess.ctrl.Submit()
					sess.mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1001, store.Len())
}

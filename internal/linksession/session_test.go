package linksession

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.LinkToken())

	require.NoError(t, s.Begin())
	assert.Equal(t, StateFetchingToken, s.State())

	s.Ready("link-token-123")
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "link-token-123", s.LinkToken())
	assert.NoError(t, s.Err())

	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.LinkToken())
}

func TestSessionBeginRejectsConcurrentFetch(t *testing.T) {
	s := New()
	require.NoError(t, s.Begin())
	assert.Error(t, s.Begin())

	// A finished fetch frees the session for the next attempt.
	s.Ready("token")
	assert.NoError(t, s.Begin())
}

func TestSessionFail(t *testing.T) {
	s := New()
	require.NoError(t, s.Begin())

	cause := errors.New("provider unavailable")
	s.Fail(cause)

	assert.Equal(t, StateError, s.State())
	assert.Empty(t, s.LinkToken())
	assert.Equal(t, cause, s.Err())

	// Errors are retryable.
	assert.NoError(t, s.Begin())
}

func TestStoreIsolatesUsers(t *testing.T) {
	store := NewStore()

	a := store.Get("user-a")
	b := store.Get("user-b")
	require.NotSame(t, a, b)

	require.NoError(t, a.Begin())
	a.Ready("token-a")

	assert.Equal(t, StateIdle, b.State(), "one user's session must not leak into another's")
	assert.Same(t, a, store.Get("user-a"))
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := store.Get("shared")
			if err := s.Begin(); err == nil {
				s.Ready("token")
			}
			_ = s.State()
		}()
	}
	wg.Wait()

	assert.Equal(t, StateReady, store.Get("shared").State())
}

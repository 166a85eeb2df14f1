package quota

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAndExhaust(t *testing.T) {
	s := NewSessionStore(3, time.Hour)

	remaining, err := s.Reserve("sess", CostSingle)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	remaining, err = s.Reserve("sess", CostSingle)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	// remaining=1 is not enough for a 2-credit batch.
	_, err = s.Reserve("sess", CostBatch)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// ...but still enough for one single analysis.
	remaining, err = s.Reserve("sess", CostSingle)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	// Exhausted: every further operation is denied.
	_, err = s.Reserve("sess", CostSingle)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	_, err = s.Reserve("sess", CostBatch)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestFailedReserveDoesNotConsume(t *testing.T) {
	s := NewSessionStore(3, time.Hour)

	_, err := s.Reserve("sess", CostBatch)
	require.NoError(t, err)

	_, err = s.Reserve("sess", CostBatch)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 1, s.Remaining("sess"))
}

func TestRefund(t *testing.T) {
	s := NewSessionStore(3, time.Hour)

	_, err := s.Reserve("sess", CostBatch)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Remaining("sess"))

	s.Refund("sess", CostBatch)
	assert.Equal(t, 3, s.Remaining("sess"))

	// Refund never pushes consumed below zero.
	s.Refund("sess", 10)
	assert.Equal(t, 3, s.Remaining("sess"))

	// Refunding an unknown session is a no-op.
	s.Refund("ghost", CostSingle)
	assert.Equal(t, 3, s.Remaining("ghost"))
}

func TestSessionsAreIndependent(t *testing.T) {
	s := NewSessionStore(3, time.Hour)

	_, err := s.Reserve("a", CostBatch)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Remaining("a"))
	assert.Equal(t, 3, s.Remaining("b"))
}

func TestConcurrentReserveNeverOversells(t *testing.T) {
	s := NewSessionStore(3, time.Hour)

	var wg sync.WaitGroup
	granted := make(chan int, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Reserve("sess", CostSingle); err == nil {
				granted <- 1
			}
		}()
	}
	wg.Wait()
	close(granted)

	total := 0
	for range granted {
		total++
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 0, s.Remaining("sess"))
}

func TestDefaults(t *testing.T) {
	s := NewSessionStore(0, 0)
	assert.Equal(t, DefaultMaxFreeAnalyses, s.Limit())
}

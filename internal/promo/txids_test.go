package promo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxSetCheckAndInsert(t *testing.T) {
	s := NewTxSet()

	assert.False(t, s.Contains("abc123"))
	assert.True(t, s.CheckAndInsert("abc123"))
	assert.True(t, s.Contains("abc123"))
	assert.False(t, s.CheckAndInsert("abc123"))
	assert.True(t, s.CheckAndInsert("def456"))
}

func TestTxSetConcurrentInsertSameTx(t *testing.T) {
	s := NewTxSet()

	var wg sync.WaitGroup
	var wins atomic.Int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.CheckAndInsert("abc123") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins.Load())
}

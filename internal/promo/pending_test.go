package promo

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID int64 = 999

func TestNewRef(t *testing.T) {
	assert.Equal(t, Ref("42_abc123"), NewRef(42, "abc123"))
	assert.Equal(t, Ref("42_stuvwx"), NewRef(42, "abcdefghijklmnopqrstuvwx"))
	assert.Equal(t, Ref("42_ab"), NewRef(42, "ab"))

	// Same txid suffix, different users: no collision.
	assert.NotEqual(t, NewRef(1, "xyz999"), NewRef(2, "xyz999"))
}

func TestConsumeOnce(t *testing.T) {
	r := NewActivationRegistry(adminID)
	p := PendingActivation{Ref: NewRef(42, "abc123"), UserID: 42, Mint: "MintAAA"}
	r.Register(p)

	got, err := r.Consume(p.Ref, adminID)
	require.NoError(t, err)
	assert.Equal(t, "MintAAA", got.Mint)

	_, err = r.Consume(p.Ref, adminID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeUnauthorized(t *testing.T) {
	r := NewActivationRegistry(adminID)
	p := PendingActivation{Ref: NewRef(42, "abc123"), UserID: 42}
	r.Register(p)

	_, err := r.Consume(p.Ref, 42)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The record is untouched for the real admin.
	_, err = r.Consume(p.Ref, adminID)
	assert.NoError(t, err)
}

func TestConsumeUnknownRef(t *testing.T) {
	r := NewActivationRegistry(adminID)
	_, err := r.Consume(Ref("42_abc123"), adminID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeConcurrent(t *testing.T) {
	r := NewActivationRegistry(adminID)
	ref := NewRef(42, "abc123")
	r.Register(PendingActivation{Ref: ref, UserID: 42})

	var wg sync.WaitGroup
	var wins, misses atomic.Int64
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Consume(ref, adminID); err == nil {
				wins.Add(1)
			} else {
				misses.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins.Load())
	assert.Equal(t, int64(49), misses.Load())
}
